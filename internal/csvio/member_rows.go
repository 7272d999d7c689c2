package csvio

import (
	"fmt"
	"strconv"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

// MemberFields is the exported column order for member CSV files.
var MemberFields = []string{"number", "role", "name", "show_in_koubanhyou", "show_in_schedule"}

// MemberToRow flattens a member into CSV cells in MemberFields order.
func MemberToRow(m model.Member) []string {
	return []string{
		strconv.Itoa(m.Number),
		m.Role,
		m.Name,
		FormatBool(m.ShowInKoubanhyou),
		FormatBool(m.ShowInSchedule),
	}
}

// MemberFromRow builds a member from one parsed CSV row.  line is the
// 1-based data row number used for issue reporting.  A non-numeric
// number makes the row unusable and returns a RowIssue.
func MemberFromRow(row map[string]string, line int) (model.Member, error) {
	number, err := strconv.Atoi(row["number"])
	if err != nil {
		return model.Member{}, &RowIssue{Line: line, Field: "number", Err: fmt.Errorf("not a number: %q", row["number"])}
	}
	return model.Member{
		Number:           number,
		Role:             row["role"],
		Name:             row["name"],
		ShowInKoubanhyou: ParseBool(row["show_in_koubanhyou"]),
		ShowInSchedule:   ParseBool(row["show_in_schedule"]),
	}, nil
}
