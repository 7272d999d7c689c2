package csvio

import "github.com/aoihana/koubanhyou-server/internal/model"

// SongFields is the exported column order for song CSV files.
var SongFields = []string{"ba", "song_number", "song_name", "score_link", "audio_link", "is_active"}

// SongToRow flattens a song into CSV cells in SongFields order.
// Absent links render as empty cells.
func SongToRow(s model.Song) []string {
	score, audio := "", ""
	if s.ScoreLink != nil {
		score = *s.ScoreLink
	}
	if s.AudioLink != nil {
		audio = *s.AudioLink
	}
	return []string{s.Ba, s.SongNumber, s.SongName, score, audio, FormatBool(s.IsActive)}
}

// SongFromRow builds a song from one parsed CSV row.  Empty link cells
// import as nil rather than zero-length strings.
func SongFromRow(row map[string]string) model.Song {
	s := model.Song{
		Ba:         row["ba"],
		SongNumber: row["song_number"],
		SongName:   row["song_name"],
		IsActive:   ParseBool(row["is_active"]),
	}
	if v := row["score_link"]; v != "" {
		s.ScoreLink = &v
	}
	if v := row["audio_link"]; v != "" {
		s.AudioLink = &v
	}
	return s
}
