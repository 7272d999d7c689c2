package model

import "time"

// Song represents a number in the production.  Songs are grouped by
// their ba (act/scene label) and ordered by song number.  SongNumber is
// stored as text because historical sheets contain values like "12.5";
// ordering casts it numerically and places non-numeric values last.
//
// Fields:
//   - ID: primary key identifier.
//   - Ba: act/scene grouping label.
//   - SongNumber: position within the ba, stored as text.
//   - SongName: title of the song.
//   - ScoreLink: optional URL to the sheet music.
//   - AudioLink: optional URL to a practice recording.
//   - IsActive: inactive songs are excluded from every matrix view.
//   - CreatedAt: creation timestamp.
//   - UpdatedAt: last update timestamp.
type Song struct {
	ID         uint64    `json:"id"`          // songs.id
	Ba         string    `json:"ba"`          // songs.ba
	SongNumber string    `json:"song_number"` // songs.song_number
	SongName   string    `json:"song_name"`   // songs.song_name
	ScoreLink  *string   `json:"score_link"`  // songs.score_link (nullable)
	AudioLink  *string   `json:"audio_link"`  // songs.audio_link (nullable)
	IsActive   bool      `json:"is_active"`   // songs.is_active
	CreatedAt  time.Time `json:"created_at"`  // songs.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // songs.updated_at
}
