package handler // handler contains the CSV export/import endpoints

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aoihana/koubanhyou-server/internal/csvio"
	"github.com/aoihana/koubanhyou-server/internal/model"
	"github.com/aoihana/koubanhyou-server/internal/queue"
	queue_publisher "github.com/aoihana/koubanhyou-server/internal/service"
)

// sendCSV writes a rendered CSV file as an attachment download.
func sendCSV(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportMembers handles GET /v1/members/export/csv and streams every
// member row, including hidden ones, so an export-edit-import round
// trip loses nothing.
func (h *Handler) ExportMembers(c echo.Context) error {
	members, err := h.MemberRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, csvio.MemberToRow(m))
	}
	data, err := csvio.RenderRows(csvio.MemberFields, rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not render csv"})
	}
	return sendCSV(c, "members.csv", data)
}

// ExportSongs handles GET /v1/songs/export/csv.
func (h *Handler) ExportSongs(c echo.Context) error {
	songs, err := h.SongRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, csvio.SongToRow(s))
	}
	data, err := csvio.RenderRows(csvio.SongFields, rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not render csv"})
	}
	return sendCSV(c, "songs.csv", data)
}

// ExportSchedules handles GET /v1/schedules/export/csv.
func (h *Handler) ExportSchedules(c echo.Context) error {
	entries, err := h.ScheduleRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, csvio.ScheduleToRow(e))
	}
	data, err := csvio.RenderRows(csvio.ScheduleFields, rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not render csv"})
	}
	return sendCSV(c, "schedules.csv", data)
}

// importReport is the JSON body returned by every import endpoint.
type importReport struct {
	Message   string   `json:"message"`
	Processed int      `json:"processed"`
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	RowIssues []string `json:"row_issues,omitempty"`
}

// readUpload pulls the "file" form part out of a multipart request and
// parses it into header-keyed rows.
func readUpload(c echo.Context) ([]map[string]string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return csvio.ParseRows(data)
}

// announceImport publishes the completion event after a commit. The
// import already succeeded, so a broker failure is logged inside the
// publisher and otherwise ignored.
func announceImport(ctx context.Context, entity string, report importReport) {
	_ = queue_publisher.PublishImportCompleted(ctx, queue.ImportCompletedEvent{
		Entity:     entity,
		Processed:  report.Processed,
		Inserted:   report.Inserted,
		Updated:    report.Updated,
		Skipped:    report.Skipped,
		RowIssues:  len(report.RowIssues),
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// ImportMembers handles POST /v1/members/import/csv. Rows with a bad
// number column are skipped and reported; existing member numbers are
// left untouched via insert-ignore. All writes share one transaction,
// so a database failure mid-file leaves nothing half imported.
func (h *Handler) ImportMembers(c echo.Context) error {
	rows, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var report importReport
	members := make([]model.Member, 0, len(rows))
	for i, row := range rows {
		m, err := csvio.MemberFromRow(row, i+1)
		if err != nil {
			log.Printf("import members: %v", err)
			report.RowIssues = append(report.RowIssues, err.Error())
			report.Skipped++
			continue
		}
		members = append(members, m)
	}
	report.Processed = len(rows)

	ctx := c.Request().Context()
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not start transaction"})
	}
	for i := range members {
		inserted, err := h.MemberRepo.InsertIgnoreTx(ctx, tx, &members[i])
		if err != nil {
			_ = tx.Rollback()
			log.Printf("import members: insert failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "import failed, no rows were applied"})
		}
		if inserted {
			report.Inserted++
		} else {
			report.Skipped++
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "import failed, no rows were applied"})
	}

	report.Message = "members imported"
	announceImport(ctx, "members", report)
	return c.JSON(http.StatusOK, report)
}

// ImportSongs handles POST /v1/songs/import/csv. Duplicate ba and
// song_number pairs already in the database are skipped, everything
// else inserts inside a single transaction.
func (h *Handler) ImportSongs(c echo.Context) error {
	rows, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var report importReport
	report.Processed = len(rows)

	ctx := c.Request().Context()
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not start transaction"})
	}
	for _, row := range rows {
		s := csvio.SongFromRow(row)
		inserted, err := h.SongRepo.InsertIgnoreTx(ctx, tx, &s)
		if err != nil {
			_ = tx.Rollback()
			log.Printf("import songs: insert failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "import failed, no rows were applied"})
		}
		if inserted {
			report.Inserted++
		} else {
			report.Skipped++
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "import failed, no rows were applied"})
	}

	report.Message = "songs imported"
	announceImport(ctx, "songs", report)
	return c.JSON(http.StatusOK, report)
}

// ImportSchedules handles POST /v1/schedules/import/csv. Rows are
// matched on the natural key (date, venue, start time): existing
// entries are updated in place, new ones inserted. A row with an
// unparseable date is skipped and reported; malformed set cells are
// reported but the row still imports with the field unset. All writes
// share one transaction.
func (h *Handler) ImportSchedules(c echo.Context) error {
	rows, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var report importReport
	entries := make([]model.ScheduleEntry, 0, len(rows))
	for i, row := range rows {
		e, issues, err := csvio.ScheduleFromRow(row, i+1)
		if err != nil {
			log.Printf("import schedules: %v", err)
			report.RowIssues = append(report.RowIssues, err.Error())
			report.Skipped++
			continue
		}
		for _, issue := range issues {
			log.Printf("import schedules: %v", issue)
			report.RowIssues = append(report.RowIssues, issue.Error())
		}
		entries = append(entries, e)
	}
	report.Processed = len(rows)

	ctx := c.Request().Context()
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not start transaction"})
	}
	for i := range entries {
		inserted, err := h.ScheduleRepo.UpsertByNaturalKeyTx(ctx, tx, &entries[i])
		if err != nil {
			_ = tx.Rollback()
			log.Printf("import schedules: upsert failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "import failed, no rows were applied"})
		}
		if inserted {
			report.Inserted++
		} else {
			report.Updated++
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "import failed, no rows were applied"})
	}

	report.Message = "schedules imported"
	announceImport(ctx, "schedules", report)
	return c.JSON(http.StatusOK, report)
}
