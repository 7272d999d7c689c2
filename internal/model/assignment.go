package model

import "time"

// Assignment links a member to a song in the koubanhyou matrix.  There
// is at most one row per (member, song) pair; a missing row reads as
// "not assigned".  Rows are created by the first toggle on a cell and
// flipped in place afterwards, so IsAssigned can be false on an
// existing row.
type Assignment struct {
	MemberID   uint64    `json:"member_id"`   // koubanhyou.member_id
	SongID     uint64    `json:"song_id"`     // koubanhyou.song_id
	IsAssigned bool      `json:"is_assigned"` // koubanhyou.is_assigned
	CreatedAt  time.Time `json:"created_at"`  // koubanhyou.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // koubanhyou.updated_at
}
