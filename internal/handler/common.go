package handler // handler wires HTTP requests to repositories and the roster rules

import (
	"database/sql"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aoihana/koubanhyou-server/internal/repository"
)

// Handler bundles the repositories behind every endpoint. The DB
// handle is kept alongside so CSV imports can open one transaction
// spanning many repository calls.
type Handler struct {
	DB             *sql.DB
	MemberRepo     *repository.MemberRepo
	SongRepo       *repository.SongRepo
	AssignmentRepo *repository.AssignmentRepo
	ScheduleRepo   *repository.ScheduleRepo
	AttendanceRepo *repository.AttendanceRepo
}

// NewHandler constructs a Handler with repositories bound to db.
func NewHandler(db *sql.DB) *Handler {
	return &Handler{
		DB:             db,
		MemberRepo:     repository.NewMemberRepo(db),
		SongRepo:       repository.NewSongRepo(db),
		AssignmentRepo: repository.NewAssignmentRepo(db),
		ScheduleRepo:   repository.NewScheduleRepo(db),
		AttendanceRepo: repository.NewAttendanceRepo(db),
	}
}

// pathID parses the named path parameter as an id.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
