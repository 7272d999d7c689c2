package handler // handler contains member CRUD endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aoihana/koubanhyou-server/internal/model"
	"github.com/aoihana/koubanhyou-server/internal/repository"
)

// ListMembers handles GET /v1/members and returns every member in
// display-number order.
func (h *Handler) ListMembers(c echo.Context) error {
	members, err := h.MemberRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, members)
}

// ListKoubanhyouMembers handles GET /v1/members/koubanhyou and returns
// the members visible in the assignment matrix.
func (h *Handler) ListKoubanhyouMembers(c echo.Context) error {
	members, err := h.MemberRepo.ListForKoubanhyou(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, members)
}

// ListScheduleMembers handles GET /v1/members/schedule and returns the
// members visible in the rehearsal schedule.
func (h *Handler) ListScheduleMembers(c echo.Context) error {
	members, err := h.MemberRepo.ListForSchedule(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, members)
}

// CreateMember handles POST /v1/members. The visibility flags default
// to true when omitted so a new member shows up everywhere until the
// admin hides them.
func (h *Handler) CreateMember(c echo.Context) error {
	var body struct {
		Number           *int   `json:"number"`
		Role             string `json:"role"`
		Name             string `json:"name"`
		ShowInKoubanhyou *bool  `json:"show_in_koubanhyou"`
		ShowInSchedule   *bool  `json:"show_in_schedule"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.Number == nil || strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "number and name are required"})
	}

	m := model.Member{
		Number:           *body.Number,
		Role:             body.Role,
		Name:             body.Name,
		ShowInKoubanhyou: true,
		ShowInSchedule:   true,
	}
	if body.ShowInKoubanhyou != nil {
		m.ShowInKoubanhyou = *body.ShowInKoubanhyou
	}
	if body.ShowInSchedule != nil {
		m.ShowInSchedule = *body.ShowInSchedule
	}

	if err := h.MemberRepo.Create(c.Request().Context(), &m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "member number already in use"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create member"})
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMember handles PUT /v1/members/:id and replaces all editable
// fields of a member.
func (h *Handler) UpdateMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		Number           int    `json:"number"`
		Role             string `json:"role"`
		Name             string `json:"name"`
		ShowInKoubanhyou bool   `json:"show_in_koubanhyou"`
		ShowInSchedule   bool   `json:"show_in_schedule"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	m := model.Member{
		ID:               id,
		Number:           body.Number,
		Role:             body.Role,
		Name:             body.Name,
		ShowInKoubanhyou: body.ShowInKoubanhyou,
		ShowInSchedule:   body.ShowInSchedule,
	}
	if err := h.MemberRepo.Update(c.Request().Context(), &m); err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "member not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, map[string]string{"error": "member number already in use"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMember handles DELETE /v1/members/:id. Assignment and
// attendance rows of the member are removed by the schema's cascades.
func (h *Handler) DeleteMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.MemberRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "member deleted"})
}
