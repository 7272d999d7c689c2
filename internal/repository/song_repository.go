package repository // repository defines data access for songs

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

// ErrSongNotFound is returned when a song lookup yields no rows.
var ErrSongNotFound = errors.New("song not found")

// SongRepo provides methods to work with songs in the database.
type SongRepo struct {
	db *sql.DB
}

// NewSongRepo constructs a SongRepo with the given DB handle.
func NewSongRepo(db *sql.DB) *SongRepo {
	return &SongRepo{db: db}
}

const songColumns = `id, ba, song_number, song_name, score_link, audio_link, is_active, created_at, updated_at`

// songOrder sorts songs by ba, then numerically by song_number.
// song_number is stored as text; rows whose number is not purely
// numeric sort after the numeric ones, then fall back to the raw text.
const songOrder = `ORDER BY ba, (song_number REGEXP '^[0-9]+$') DESC, CAST(song_number AS UNSIGNED), song_number`

func scanSong(row interface{ Scan(...any) error }, s *model.Song) error {
	s.ScoreLink, s.AudioLink = nil, nil
	var score, audio sql.NullString
	if err := row.Scan(&s.ID, &s.Ba, &s.SongNumber, &s.SongName,
		&score, &audio, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	if score.Valid {
		v := score.String
		s.ScoreLink = &v
	}
	if audio.Valid {
		v := audio.String
		s.AudioLink = &v
	}
	return nil
}

func (r *SongRepo) list(ctx context.Context, where string) ([]model.Song, error) {
	q := `SELECT ` + songColumns + ` FROM songs ` + where + ` ` + songOrder
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Song
	for rows.Next() {
		var s model.Song
		if err := scanSong(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// List retrieves every song in matrix order.
func (r *SongRepo) List(ctx context.Context) ([]model.Song, error) {
	return r.list(ctx, "")
}

// ListActive retrieves the songs included in the matrices.
func (r *SongRepo) ListActive(ctx context.Context) ([]model.Song, error) {
	return r.list(ctx, "WHERE is_active = TRUE")
}

// GetByID retrieves a song by id.
func (r *SongRepo) GetByID(ctx context.Context, id uint64) (*model.Song, error) {
	q := `SELECT ` + songColumns + ` FROM songs WHERE id = ?`
	var s model.Song
	if err := scanSong(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a song and populates the generated id and timestamps.
func (r *SongRepo) Create(ctx context.Context, s *model.Song) error {
	const q = `INSERT INTO songs (ba, song_number, song_name, score_link, audio_link, is_active)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Ba, s.SongNumber, s.SongName, s.ScoreLink, s.AudioLink, s.IsActive)
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
	s.ID = uint64(id)
	return scanSong(r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, s.ID), s)
}

// Update replaces all editable fields of a song and selects the row
// back. A missing id maps to ErrSongNotFound.
func (r *SongRepo) Update(ctx context.Context, s *model.Song) error {
	const q = `UPDATE songs
	           SET ba = ?, song_number = ?, song_name = ?, score_link = ?, audio_link = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, s.Ba, s.SongNumber, s.SongName, s.ScoreLink, s.AudioLink, s.IsActive, s.ID); err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	err := scanSong(r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, s.ID), s)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSongNotFound
	}
	return err
}

// Delete removes a song. Assignment rows cascade.
func (r *SongRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSongNotFound
	}
	return nil
}

// InsertIgnoreTx inserts a song inside an import transaction, skipping
// silently when the (ba, song_number) pair already exists. The no-op
// ON DUPLICATE KEY clause tolerates only the unique-key conflict, so
// malformed values still fail the import instead of inserting clipped.
// The returned bool reports whether a row was actually inserted.
func (r *SongRepo) InsertIgnoreTx(ctx context.Context, tx *sql.Tx, s *model.Song) (bool, error) {
	const q = `INSERT INTO songs (ba, song_number, song_name, score_link, audio_link, is_active)
	           VALUES (?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE id = id`
	res, err := tx.ExecContext(ctx, q, s.Ba, s.SongNumber, s.SongName, s.ScoreLink, s.AudioLink, s.IsActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
