package repository // repository defines data access for attendance cells

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoihana/koubanhyou-server/internal/model"
	"github.com/aoihana/koubanhyou-server/internal/roster"
)

// AttendanceRepo provides methods to work with the schedule×member
// attendance relation.
type AttendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo constructs an AttendanceRepo with the given DB handle.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Ledger loads every attendance cell for schedule-visible members.
// Cells that were never set have no row and are simply absent from the
// returned map.
func (r *AttendanceRepo) Ledger(ctx context.Context) (roster.Ledger, error) {
	const q = `SELECT sa.schedule_id, sa.member_id, sa.attendance_status, sa.custom_text
	           FROM schedule_attendance sa
	           JOIN members m ON sa.member_id = m.id
	           WHERE m.show_in_schedule = TRUE`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ledger := roster.Ledger{}
	for rows.Next() {
		var scheduleID, memberID uint64
		var status string
		var text sql.NullString
		if err := rows.Scan(&scheduleID, &memberID, &status, &text); err != nil {
			return nil, err
		}
		cell := roster.Cell{Status: status}
		if text.Valid {
			v := text.String
			cell.Text = &v
		}
		ledger[roster.AttendanceKey{ScheduleID: scheduleID, MemberID: memberID}] = cell
	}
	return ledger, rows.Err()
}

// GetCell reads one attendance cell directly. Unlike Ledger it applies
// no visibility filter: hiding a member from the board does not blank
// their stored marks, so the click cycle must see them. A cell that was
// never set returns nil with no error.
func (r *AttendanceRepo) GetCell(ctx context.Context, scheduleID, memberID uint64) (*roster.Cell, error) {
	var status string
	var text sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT attendance_status, custom_text FROM schedule_attendance
		 WHERE schedule_id = ? AND member_id = ?`,
		scheduleID, memberID).Scan(&status, &text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cell := roster.Cell{Status: status}
	if text.Valid {
		v := text.String
		cell.Text = &v
	}
	return &cell, nil
}

// Upsert replaces one attendance cell wholesale and returns the stored
// row. Text must be nil unless status is the custom tag; the state
// machine in the roster package produces exactly that shape.
// Concurrent updates to the same cell are last-write-wins.
func (r *AttendanceRepo) Upsert(ctx context.Context, scheduleID, memberID uint64, status string, text *string) (*model.AttendanceCell, error) {
	const q = `INSERT INTO schedule_attendance (schedule_id, member_id, attendance_status, custom_text)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE attendance_status = VALUES(attendance_status),
	                                   custom_text = VALUES(custom_text),
	                                   updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, q, scheduleID, memberID, status, text); err != nil {
		return nil, err
	}

	var cell model.AttendanceCell
	var stored sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT schedule_id, member_id, attendance_status, custom_text, created_at, updated_at
		 FROM schedule_attendance WHERE schedule_id = ? AND member_id = ?`,
		scheduleID, memberID).
		Scan(&cell.ScheduleID, &cell.MemberID, &cell.Status, &stored, &cell.CreatedAt, &cell.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if stored.Valid {
		v := stored.String
		cell.CustomText = &v
	}
	return &cell, nil
}

// Clear removes one attendance cell. Clearing a cell that does not
// exist is not an error; the cell already displays empty.
func (r *AttendanceRepo) Clear(ctx context.Context, scheduleID, memberID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM schedule_attendance WHERE schedule_id = ? AND member_id = ?`,
		scheduleID, memberID)
	return err
}
