package handler // handler contains schedule and attendance endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aoihana/koubanhyou-server/internal/csvio"
	"github.com/aoihana/koubanhyou-server/internal/model"
	"github.com/aoihana/koubanhyou-server/internal/repository"
	"github.com/aoihana/koubanhyou-server/internal/roster"
)

// ListSchedules handles GET /v1/schedules and returns every entry
// ordered by date then start time.
func (h *Handler) ListSchedules(c echo.Context) error {
	entries, err := h.ScheduleRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entries)
}

// boardPayload assembles the schedule board both views share: visible
// members, all entries, the attendance map and the relevance map. The
// relevance map is computed server-side through roster.IsRelevant so
// the user and admin surfaces can never disagree about gray cells.
func (h *Handler) boardPayload(c echo.Context) (map[string]any, error) {
	ctx := c.Request().Context()
	members, err := h.MemberRepo.ListForSchedule(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := h.ScheduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := h.AttendanceRepo.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	matrix, err := h.AssignmentRepo.MatrixForSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"members":    members,
		"schedules":  entries,
		"attendance": ledger.WireLedger(),
		"relevance":  roster.RelevanceMap(entries, members, matrix),
	}, nil
}

// UserSchedule handles GET /v1/schedules/user, the read-only board.
func (h *Handler) UserSchedule(c echo.Context) error {
	payload, err := h.boardPayload(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, payload)
}

// AdminSchedule handles GET /v1/schedules/admin, the editable board.
func (h *Handler) AdminSchedule(c echo.Context) error {
	payload, err := h.boardPayload(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, payload)
}

// MemberSchedule handles GET /v1/schedules/member/:member_id and
// returns only the entries relevant to that member: the rows the
// single-member view shows after a performer picks their name.
func (h *Handler) MemberSchedule(c echo.Context) error {
	memberID, err := pathID(c, "member_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid member_id"})
	}
	ctx := c.Request().Context()
	member, err := h.MemberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	entries, err := h.ScheduleRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	matrix, err := h.AssignmentRepo.MatrixForSchedule(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"member":    member,
		"schedules": roster.RelevantEntries(entries, *member, matrix),
	})
}

// SchedulesByDate handles GET /v1/schedules/date/:date and returns one
// day's entries ordered by venue then start time. Both accepted date
// forms normalize before the query.
func (h *Handler) SchedulesByDate(c echo.Context) error {
	date, err := csvio.NormalizeDate(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
	}
	entries, err := h.ScheduleRepo.ListByDate(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entries)
}

// scheduleBody is the create/update payload for schedule entries.
type scheduleBody struct {
	ScheduleDate     string   `json:"schedule_date"`
	Venue            string   `json:"venue"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	RehearsalType    string   `json:"rehearsal_type"`
	RehearsalContent string   `json:"rehearsal_content"`
	TargetSongs      []uint64 `json:"target_songs"`
	TargetRoles      []string `json:"target_roles"`
}

func (b *scheduleBody) toEntry() (model.ScheduleEntry, error) {
	date, err := csvio.NormalizeDate(b.ScheduleDate)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	return model.ScheduleEntry{
		ScheduleDate:     date,
		Venue:            b.Venue,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		RehearsalType:    b.RehearsalType,
		RehearsalContent: b.RehearsalContent,
		TargetSongs:      b.TargetSongs,
		TargetRoles:      b.TargetRoles,
	}, nil
}

// CreateSchedule handles POST /v1/schedules.
func (h *Handler) CreateSchedule(c echo.Context) error {
	var body scheduleBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Venue) == "" || body.ScheduleDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "schedule_date and venue are required"})
	}
	e, err := body.toEntry()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid schedule_date"})
	}
	if err := h.ScheduleRepo.Create(c.Request().Context(), &e); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "a schedule already exists at this date, venue and start time"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create schedule"})
	}
	return c.JSON(http.StatusCreated, e)
}

// UpdateSchedule handles PUT /v1/schedules/:id.
func (h *Handler) UpdateSchedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body scheduleBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	e, err := body.toEntry()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid schedule_date"})
	}
	e.ID = id
	if err := h.ScheduleRepo.Update(c.Request().Context(), &e); err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "schedule not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, map[string]string{"error": "a schedule already exists at this date, venue and start time"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, e)
}

// DeleteSchedule handles DELETE /v1/schedules/:id. Attendance cells of
// the entry are removed by the schema's cascades.
func (h *Handler) DeleteSchedule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.ScheduleRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "schedule deleted"})
}

// UpdateAttendance handles POST /v1/schedules/attendance. Two entry
// points share one state machine: with advance=true the stored cell is
// cycled one step (click); otherwise value is stored directly
// (double-click text entry, where a symbol is also accepted). An empty
// direct value, or a cycle that wraps, clears the cell entirely.
func (h *Handler) UpdateAttendance(c echo.Context) error {
	var body struct {
		ScheduleID uint64 `json:"schedule_id"`
		MemberID   uint64 `json:"member_id"`
		Value      string `json:"value"`
		Advance    bool   `json:"advance"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.ScheduleID == 0 || body.MemberID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "schedule_id and member_id are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.ScheduleRepo.GetByID(ctx, body.ScheduleID); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if _, err := h.MemberRepo.GetByID(ctx, body.MemberID); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "member not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	value := body.Value
	if body.Advance {
		cur, err := h.AttendanceRepo.GetCell(ctx, body.ScheduleID, body.MemberID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		next, cleared := roster.AdvanceCell(cur)
		if cleared {
			value = ""
		} else {
			value = roster.DisplayValue(next.Status, next.Text)
		}
	}

	status, text, ok := roster.SplitValue(value)
	if !ok {
		if err := h.AttendanceRepo.Clear(ctx, body.ScheduleID, body.MemberID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not clear attendance"})
		}
		return c.JSON(http.StatusOK, map[string]any{"cleared": true})
	}
	cell, err := h.AttendanceRepo.Upsert(ctx, body.ScheduleID, body.MemberID, status, text)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not update attendance"})
	}
	return c.JSON(http.StatusOK, cell)
}
