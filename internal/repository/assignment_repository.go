package repository // repository defines data access for the koubanhyou matrix

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoihana/koubanhyou-server/internal/model"
	"github.com/aoihana/koubanhyou-server/internal/roster"
)

// AssignmentRepo provides methods to work with the member×song
// assignment relation (the koubanhyou table).
type AssignmentRepo struct {
	db *sql.DB
}

// NewAssignmentRepo constructs an AssignmentRepo with the given DB handle.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// Matrix loads the assignment matrix restricted to matrix-visible
// members and active songs, the projection both koubanhyou boards
// render. Rows toggled back to false are included so the matrix view
// can distinguish "never touched" from "unassigned again" if it wants;
// both read as not assigned.
func (r *AssignmentRepo) Matrix(ctx context.Context) (roster.Matrix, error) {
	const q = `SELECT k.member_id, k.song_id, k.is_assigned
	           FROM koubanhyou k
	           JOIN members m ON k.member_id = m.id
	           JOIN songs s ON k.song_id = s.id
	           WHERE m.show_in_koubanhyou = TRUE AND s.is_active = TRUE`
	return r.matrix(ctx, q)
}

// MatrixForSchedule loads the assignments the relevance rule consumes:
// pairs marked assigned, for members visible in the schedule views.
func (r *AssignmentRepo) MatrixForSchedule(ctx context.Context) (roster.Matrix, error) {
	const q = `SELECT k.member_id, k.song_id, k.is_assigned
	           FROM koubanhyou k
	           JOIN members m ON k.member_id = m.id
	           WHERE k.is_assigned = TRUE AND m.show_in_schedule = TRUE`
	return r.matrix(ctx, q)
}

func (r *AssignmentRepo) matrix(ctx context.Context, q string) (roster.Matrix, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := roster.Matrix{}
	for rows.Next() {
		var memberID, songID uint64
		var assigned bool
		if err := rows.Scan(&memberID, &songID, &assigned); err != nil {
			return nil, err
		}
		m.Set(memberID, songID, assigned)
	}
	return m, rows.Err()
}

// Toggle flips one matrix cell and returns the resulting assignment
// row. The first toggle on a pair creates the row as assigned;
// subsequent toggles flip it in place. The select-then-write pair runs
// in one transaction so concurrent clicks on the same cell serialize.
func (r *AssignmentRepo) Toggle(ctx context.Context, memberID, songID uint64) (*model.Assignment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var cur bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_assigned FROM koubanhyou WHERE member_id = ? AND song_id = ? FOR UPDATE`,
		memberID, songID).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO koubanhyou (member_id, song_id, is_assigned) VALUES (?, ?, TRUE)`,
			memberID, songID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE koubanhyou SET is_assigned = NOT is_assigned, updated_at = CURRENT_TIMESTAMP
			 WHERE member_id = ? AND song_id = ?`,
			memberID, songID); err != nil {
			return nil, err
		}
	}

	var a model.Assignment
	if err := tx.QueryRowContext(ctx,
		`SELECT member_id, song_id, is_assigned, created_at, updated_at
		 FROM koubanhyou WHERE member_id = ? AND song_id = ?`,
		memberID, songID).Scan(&a.MemberID, &a.SongID, &a.IsAssigned, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &a, nil
}

// MemberSong pairs a song with one member's assignment flag. Songs the
// member has no row for carry IsAssigned=false.
type MemberSong struct {
	model.Song
	IsAssigned bool `json:"is_assigned"`
}

// SongsForMember retrieves every active song with the given member's
// assignment state, in matrix order.
func (r *AssignmentRepo) SongsForMember(ctx context.Context, memberID uint64) ([]MemberSong, error) {
	const q = `SELECT s.id, s.ba, s.song_number, s.song_name, s.score_link, s.audio_link, s.is_active,
	                  s.created_at, s.updated_at, COALESCE(k.is_assigned, FALSE)
	           FROM songs s
	           LEFT JOIN koubanhyou k ON s.id = k.song_id AND k.member_id = ?
	           WHERE s.is_active = TRUE
	           ` + songOrder
	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MemberSong
	for rows.Next() {
		var ms MemberSong
		var score, audio sql.NullString
		if err := rows.Scan(&ms.ID, &ms.Ba, &ms.SongNumber, &ms.SongName,
			&score, &audio, &ms.IsActive, &ms.CreatedAt, &ms.UpdatedAt, &ms.IsAssigned); err != nil {
			return nil, err
		}
		if score.Valid {
			v := score.String
			ms.ScoreLink = &v
		}
		if audio.Valid {
			v := audio.String
			ms.AudioLink = &v
		}
		result = append(result, ms)
	}
	return result, rows.Err()
}
