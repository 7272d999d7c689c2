package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/aoihana/koubanhyou-server/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes wires every endpoint of the service onto the provided
// Echo instance.  cacheMW, when non-nil, is applied only to the
// read-only user views; admin endpoints always hit the database so an
// editor sees their own change immediately.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, cacheMW echo.MiddlewareFunc) {
	// Health check endpoint for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	registerMembers(v1, h)
	registerSongs(v1, h)
	registerKoubanhyou(v1, h, cacheMW)
	registerSchedules(v1, h, cacheMW)
	registerExchange(v1, h)
}

// registerMembers wires member CRUD and the visibility-filtered lists.
func registerMembers(g *echo.Group, h *handler.Handler) {
	g.GET("/members", h.ListMembers)
	// Filtered lists back the two boards: each returns only members
	// whose visibility flag for that board is set.
	g.GET("/members/koubanhyou", h.ListKoubanhyouMembers)
	g.GET("/members/schedule", h.ListScheduleMembers)
	g.POST("/members", h.CreateMember)
	g.PUT("/members/:id", h.UpdateMember)
	g.DELETE("/members/:id", h.DeleteMember)
}

// registerSongs wires song CRUD and the active-only list.
func registerSongs(g *echo.Group, h *handler.Handler) {
	g.GET("/songs", h.ListSongs)
	g.GET("/songs/active", h.ListActiveSongs)
	g.POST("/songs", h.CreateSong)
	g.PUT("/songs/:id", h.UpdateSong)
	g.DELETE("/songs/:id", h.DeleteSong)
}

// registerKoubanhyou wires the assignment matrix views and the cell
// toggle.  Only the user view is cacheable.
func registerKoubanhyou(g *echo.Group, h *handler.Handler, cacheMW echo.MiddlewareFunc) {
	if cacheMW != nil {
		g.GET("/koubanhyou/user", h.UserKoubanhyou, cacheMW)
	} else {
		g.GET("/koubanhyou/user", h.UserKoubanhyou)
	}
	g.GET("/koubanhyou/admin", h.AdminKoubanhyou)
	// A POST to toggle flips one member and song cell; a missing cell
	// is created as assigned.
	g.POST("/koubanhyou/toggle", h.ToggleAssignment)
	g.GET("/koubanhyou/member/:member_id", h.MemberAssignments)
}

// registerSchedules wires schedule CRUD, the boards and attendance.
func registerSchedules(g *echo.Group, h *handler.Handler, cacheMW echo.MiddlewareFunc) {
	g.GET("/schedules", h.ListSchedules)
	if cacheMW != nil {
		g.GET("/schedules/user", h.UserSchedule, cacheMW)
	} else {
		g.GET("/schedules/user", h.UserSchedule)
	}
	g.GET("/schedules/admin", h.AdminSchedule)
	g.GET("/schedules/member/:member_id", h.MemberSchedule)
	g.GET("/schedules/date/:date", h.SchedulesByDate)
	g.POST("/schedules", h.CreateSchedule)
	g.PUT("/schedules/:id", h.UpdateSchedule)
	g.DELETE("/schedules/:id", h.DeleteSchedule)
	// Attendance edits arrive on one endpoint for both the click cycle
	// and the direct text entry; the body's advance flag picks the mode.
	g.POST("/schedules/attendance", h.UpdateAttendance)
}

// registerExchange wires the CSV export and import endpoints.
func registerExchange(g *echo.Group, h *handler.Handler) {
	g.GET("/members/export/csv", h.ExportMembers)
	g.POST("/members/import/csv", h.ImportMembers)
	g.GET("/songs/export/csv", h.ExportSongs)
	g.POST("/songs/import/csv", h.ImportSongs)
	g.GET("/schedules/export/csv", h.ExportSchedules)
	g.POST("/schedules/import/csv", h.ImportSchedules)
}
