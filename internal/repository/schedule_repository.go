package repository // repository defines data access for schedule entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

// ErrScheduleNotFound is returned when a schedule lookup yields no rows.
var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleRepo provides methods to work with rehearsal schedule
// entries. The target_songs and target_roles sets are stored as JSON
// text columns; NULL and the empty array both read back as no
// targeting.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// scheduleColumns formats the date and time columns as the plain
// strings the API speaks ("YYYY-MM-DD", "HH:MM") instead of letting
// the driver hand back time.Time values.
const scheduleColumns = `id, DATE_FORMAT(schedule_date, '%Y-%m-%d'), venue,
	TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
	rehearsal_type, rehearsal_content, target_songs, target_roles, created_at, updated_at`

func scanSchedule(row interface{ Scan(...any) error }, e *model.ScheduleEntry) error {
	var songs, roles []byte
	if err := row.Scan(&e.ID, &e.ScheduleDate, &e.Venue, &e.StartTime, &e.EndTime,
		&e.RehearsalType, &e.RehearsalContent, &songs, &roles, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return err
	}
	e.TargetSongs, e.TargetRoles = nil, nil
	if len(songs) > 0 {
		if err := json.Unmarshal(songs, &e.TargetSongs); err != nil {
			return fmt.Errorf("schedule %d: bad target_songs: %w", e.ID, err)
		}
	}
	if len(roles) > 0 {
		if err := json.Unmarshal(roles, &e.TargetRoles); err != nil {
			return fmt.Errorf("schedule %d: bad target_roles: %w", e.ID, err)
		}
	}
	return nil
}

// marshalSet renders a target set for storage. Empty sets store as
// NULL rather than "[]" so untargeted entries look the same however
// they were written.
func marshalSet(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func scheduleArgs(e *model.ScheduleEntry) ([]any, error) {
	songs, err := marshalSet(e.TargetSongs, len(e.TargetSongs) == 0)
	if err != nil {
		return nil, err
	}
	roles, err := marshalSet(e.TargetRoles, len(e.TargetRoles) == 0)
	if err != nil {
		return nil, err
	}
	return []any{e.ScheduleDate, e.Venue, e.StartTime, e.EndTime,
		e.RehearsalType, e.RehearsalContent, songs, roles}, nil
}

func (r *ScheduleRepo) list(ctx context.Context, where, order string, args ...any) ([]model.ScheduleEntry, error) {
	q := `SELECT ` + scheduleColumns + ` FROM schedules ` + where + ` ` + order
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		if err := scanSchedule(rows, &e); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// List retrieves every schedule entry ordered by date then start time.
func (r *ScheduleRepo) List(ctx context.Context) ([]model.ScheduleEntry, error) {
	return r.list(ctx, "", "ORDER BY schedule_date, start_time")
}

// ListByDate retrieves one day's entries ordered by venue then start
// time, the shape the per-day time table view wants.
func (r *ScheduleRepo) ListByDate(ctx context.Context, date string) ([]model.ScheduleEntry, error) {
	return r.list(ctx, "WHERE schedule_date = ?", "ORDER BY venue, start_time", date)
}

// GetByID retrieves a schedule entry by id.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	err := scanSchedule(r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a schedule entry and selects it back.
func (r *ScheduleRepo) Create(ctx context.Context, e *model.ScheduleEntry) error {
	args, err := scheduleArgs(e)
	if err != nil {
		return err
	}
	const q = `INSERT INTO schedules
	           (schedule_date, venue, start_time, end_time, rehearsal_type, rehearsal_content, target_songs, target_roles)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return scanSchedule(r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, e.ID), e)
}

// Update replaces all fields of a schedule entry and selects it back.
func (r *ScheduleRepo) Update(ctx context.Context, e *model.ScheduleEntry) error {
	args, err := scheduleArgs(e)
	if err != nil {
		return err
	}
	args = append(args, e.ID)
	const q = `UPDATE schedules
	           SET schedule_date = ?, venue = ?, start_time = ?, end_time = ?,
	               rehearsal_type = ?, rehearsal_content = ?, target_songs = ?,
	               target_roles = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	err = scanSchedule(r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, e.ID), e)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrScheduleNotFound
	}
	return err
}

// Delete removes a schedule entry. Attendance rows cascade.
func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// UpsertByNaturalKeyTx writes one imported entry inside an import
// transaction. An existing row with the same (schedule_date, venue,
// start_time) triple is updated in place instead of duplicated on
// re-import; the returned bool reports insert (true) versus update.
func (r *ScheduleRepo) UpsertByNaturalKeyTx(ctx context.Context, tx *sql.Tx, e *model.ScheduleEntry) (bool, error) {
	var id uint64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM schedules WHERE schedule_date = ? AND venue = ? AND start_time = ?`,
		e.ScheduleDate, e.Venue, e.StartTime).Scan(&id)

	args, argErr := scheduleArgs(e)
	if argErr != nil {
		return false, argErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		const ins = `INSERT INTO schedules
		             (schedule_date, venue, start_time, end_time, rehearsal_type, rehearsal_content, target_songs, target_roles)
		             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, ins, args...); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	default:
		const upd = `UPDATE schedules
		             SET schedule_date = ?, venue = ?, start_time = ?, end_time = ?,
		                 rehearsal_type = ?, rehearsal_content = ?, target_songs = ?,
		                 target_roles = ?, updated_at = CURRENT_TIMESTAMP
		             WHERE id = ?`
		if _, err := tx.ExecContext(ctx, upd, append(args, id)...); err != nil {
			return false, err
		}
		return false, nil
	}
}
