package csvio

import (
	"encoding/json"
	"strings"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

// ScheduleFields is the exported column order for schedule CSV files.
var ScheduleFields = []string{
	"schedule_date", "venue", "start_time", "end_time",
	"rehearsal_type", "rehearsal_content", "target_songs", "target_roles",
}

// ScheduleToRow flattens a schedule entry into CSV cells.  The two set
// fields serialize as JSON-array text so they survive the trip through
// spreadsheet tools as single cells.
func ScheduleToRow(e model.ScheduleEntry) []string {
	songs, _ := json.Marshal(e.TargetSongs)
	roles, _ := json.Marshal(e.TargetRoles)
	if e.TargetSongs == nil {
		songs = []byte("[]")
	}
	if e.TargetRoles == nil {
		roles = []byte("[]")
	}
	return []string{
		e.ScheduleDate, e.Venue, e.StartTime, e.EndTime,
		e.RehearsalType, e.RehearsalContent, string(songs), string(roles),
	}
}

// ScheduleFromRow builds a schedule entry from one parsed CSV row.
// A bad date makes the whole row unusable (it is part of the natural
// key).  Malformed set fields are row-local: each is reported as a
// RowIssue in issues and imported as unset, without failing the row.
func ScheduleFromRow(row map[string]string, line int) (model.ScheduleEntry, []*RowIssue, error) {
	date, err := NormalizeDate(row["schedule_date"])
	if err != nil {
		return model.ScheduleEntry{}, nil, &RowIssue{Line: line, Field: "schedule_date", Err: err}
	}

	e := model.ScheduleEntry{
		ScheduleDate:     date,
		Venue:            row["venue"],
		StartTime:        row["start_time"],
		EndTime:          row["end_time"],
		RehearsalType:    row["rehearsal_type"],
		RehearsalContent: row["rehearsal_content"],
	}

	var issues []*RowIssue
	if err := parseJSONList(row["target_songs"], &e.TargetSongs); err != nil {
		issues = append(issues, &RowIssue{Line: line, Field: "target_songs", Err: err})
		e.TargetSongs = nil
	}
	if err := parseJSONList(row["target_roles"], &e.TargetRoles); err != nil {
		issues = append(issues, &RowIssue{Line: line, Field: "target_roles", Err: err})
		e.TargetRoles = nil
	}
	return e, issues, nil
}

// parseJSONList decodes a JSON-array cell into dst.  Spreadsheet tools
// wrap cells in stray quotes and whitespace, so surrounding quote pairs
// are peeled off until the array itself is exposed.  An empty cell
// decodes as no value.
func parseJSONList(cell string, dst any) error {
	cell = strings.TrimSpace(cell)
	for len(cell) >= 2 && (cell[0] == '"' || cell[0] == '\'') && cell[len(cell)-1] == cell[0] {
		inner := strings.TrimSpace(cell[1 : len(cell)-1])
		if !strings.HasPrefix(inner, "[") {
			break
		}
		cell = inner
	}
	if cell == "" {
		return nil
	}
	return json.Unmarshal([]byte(cell), dst)
}
