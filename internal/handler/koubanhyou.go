package handler // handler contains the koubanhyou matrix endpoints

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aoihana/koubanhyou-server/internal/repository"
)

// matrixPayload assembles the response both matrix views share:
// visible members, active songs and the flattened matrix.
func (h *Handler) matrixPayload(c echo.Context) (map[string]any, error) {
	ctx := c.Request().Context()
	members, err := h.MemberRepo.ListForKoubanhyou(ctx)
	if err != nil {
		return nil, err
	}
	songs, err := h.SongRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	matrix, err := h.AssignmentRepo.Matrix(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"members": members,
		"songs":   songs,
		"matrix":  matrix.WireMatrix(),
	}, nil
}

// UserKoubanhyou handles GET /v1/koubanhyou/user, the read-only matrix
// view. It is served through the response cache.
func (h *Handler) UserKoubanhyou(c echo.Context) error {
	payload, err := h.matrixPayload(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, payload)
}

// AdminKoubanhyou handles GET /v1/koubanhyou/admin, the editable matrix
// view. Same payload as the user view, never cached, so toggles read
// back immediately.
func (h *Handler) AdminKoubanhyou(c echo.Context) error {
	payload, err := h.matrixPayload(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, payload)
}

// ToggleAssignment handles POST /v1/koubanhyou/toggle. The first
// toggle on a pair creates the assignment as true; later toggles flip
// it in place, so two toggles always return the cell to where it was.
func (h *Handler) ToggleAssignment(c echo.Context) error {
	var body struct {
		MemberID uint64 `json:"member_id"`
		SongID   uint64 `json:"song_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.MemberID == 0 || body.SongID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "member_id and song_id are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.MemberRepo.GetByID(ctx, body.MemberID); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if _, err := h.SongRepo.GetByID(ctx, body.SongID); err != nil {
		if errors.Is(err, repository.ErrSongNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "song not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	a, err := h.AssignmentRepo.Toggle(ctx, body.MemberID, body.SongID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "toggle failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// MemberAssignments handles GET /v1/koubanhyou/member/:member_id and
// returns every active song with that member's assignment flag.
func (h *Handler) MemberAssignments(c echo.Context) error {
	memberID, err := pathID(c, "member_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid member_id"})
	}
	ctx := c.Request().Context()
	if _, err := h.MemberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	songs, err := h.AssignmentRepo.SongsForMember(ctx, memberID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, songs)
}
