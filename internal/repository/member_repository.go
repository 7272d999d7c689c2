package repository // repository defines data access for members

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

// ErrMemberNotFound is returned when a member lookup yields no rows.
var ErrMemberNotFound = errors.New("member not found")

// MemberRepo provides methods to work with members in the database.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo constructs a MemberRepo with the given DB handle.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

const memberColumns = `id, number, role, name, show_in_koubanhyou, show_in_schedule, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }, m *model.Member) error {
	return row.Scan(&m.ID, &m.Number, &m.Role, &m.Name,
		&m.ShowInKoubanhyou, &m.ShowInSchedule, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MemberRepo) list(ctx context.Context, where string) ([]model.Member, error) {
	q := `SELECT ` + memberColumns + ` FROM members ` + where + ` ORDER BY number ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Member
	for rows.Next() {
		var m model.Member
		if err := scanMember(rows, &m); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// List retrieves every member ordered by display number.
func (r *MemberRepo) List(ctx context.Context) ([]model.Member, error) {
	return r.list(ctx, "")
}

// ListForKoubanhyou retrieves the members visible in the assignment matrix.
func (r *MemberRepo) ListForKoubanhyou(ctx context.Context) ([]model.Member, error) {
	return r.list(ctx, "WHERE show_in_koubanhyou = TRUE")
}

// ListForSchedule retrieves the members visible in the rehearsal schedule.
func (r *MemberRepo) ListForSchedule(ctx context.Context) ([]model.Member, error) {
	return r.list(ctx, "WHERE show_in_schedule = TRUE")
}

// GetByID retrieves a member by id.
func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (*model.Member, error) {
	q := `SELECT ` + memberColumns + ` FROM members WHERE id = ?`
	var m model.Member
	if err := scanMember(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a member and populates the generated id plus the
// database-assigned timestamps. A duplicate number maps to ErrConflict.
func (r *MemberRepo) Create(ctx context.Context, m *model.Member) error {
	const q = `INSERT INTO members (number, role, name, show_in_koubanhyou, show_in_schedule)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Number, m.Role, m.Name, m.ShowInKoubanhyou, m.ShowInSchedule)
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
	m.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	return scanMember(r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, m.ID), m)
}

// Update replaces all editable fields of a member. The row is selected
// back afterwards so the caller sees fresh timestamps; a missing id
// maps to ErrMemberNotFound.
func (r *MemberRepo) Update(ctx context.Context, m *model.Member) error {
	const q = `UPDATE members
	           SET number = ?, role = ?, name = ?, show_in_koubanhyou = ?, show_in_schedule = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, m.Number, m.Role, m.Name, m.ShowInKoubanhyou, m.ShowInSchedule, m.ID); err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	err := scanMember(r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, m.ID), m)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMemberNotFound
	}
	return err
}

// Delete removes a member. Assignment and attendance rows cascade.
func (r *MemberRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// InsertIgnoreTx inserts a member inside an import transaction,
// skipping silently when the display number is already taken. CSV
// import never overwrites existing members, it only appends new ones.
// The no-op ON DUPLICATE KEY clause tolerates exactly the unique-key
// conflict; anything else (truncation, bad values) still errors, where
// INSERT IGNORE would have clipped and carried on. An insert reports
// one affected row, the no-op update zero.
func (r *MemberRepo) InsertIgnoreTx(ctx context.Context, tx *sql.Tx, m *model.Member) (bool, error) {
	const q = `INSERT INTO members (number, role, name, show_in_koubanhyou, show_in_schedule)
	           VALUES (?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE id = id`
	res, err := tx.ExecContext(ctx, q, m.Number, m.Role, m.Name, m.ShowInKoubanhyou, m.ShowInSchedule)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
