// Package queue defines message payloads exchanged over the message broker.
package queue

// ImportCompletedEvent is published after a CSV import commits. It
// carries the per-import counts so downstream consumers can log or
// audit bulk edits without querying the primary database.
type ImportCompletedEvent struct {
	Entity     string `json:"entity"` // "members" | "songs" | "schedules"
	Processed  int    `json:"processed"`
	Inserted   int    `json:"inserted"`
	Updated    int    `json:"updated"`
	Skipped    int    `json:"skipped"`
	RowIssues  int    `json:"row_issues"`
	ImportedAt string `json:"imported_at"`
}
