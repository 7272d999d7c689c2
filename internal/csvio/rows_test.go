package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

func TestMemberRowRoundTrip(t *testing.T) {
	// Every combination of the two visibility flags survives the trip.
	for _, kou := range []bool{true, false} {
		for _, sch := range []bool{true, false} {
			in := model.Member{Number: 7, Role: "lead", Name: "佐藤", ShowInKoubanhyou: kou, ShowInSchedule: sch}
			row := MemberToRow(in)
			require.Len(t, row, len(MemberFields))

			parsed := map[string]string{}
			for i, f := range MemberFields {
				parsed[f] = row[i]
			}
			out, err := MemberFromRow(parsed, 1)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		}
	}
}

func TestMemberFromRowBadNumber(t *testing.T) {
	_, err := MemberFromRow(map[string]string{"number": "seven", "name": "x"}, 3)
	var issue *RowIssue
	require.ErrorAs(t, err, &issue)
	assert.Equal(t, 3, issue.Line)
	assert.Equal(t, "number", issue.Field)
}

func TestSongRowRoundTrip(t *testing.T) {
	score := "https://example.com/score.pdf"
	for _, active := range []bool{true, false} {
		in := model.Song{Ba: "一場", SongNumber: "12", SongName: "opening", ScoreLink: &score, IsActive: active}
		row := SongToRow(in)
		require.Len(t, row, len(SongFields))

		parsed := map[string]string{}
		for i, f := range SongFields {
			parsed[f] = row[i]
		}
		out := SongFromRow(parsed)
		assert.Equal(t, in, out)
	}
}

func TestSongFromRowEmptyLinks(t *testing.T) {
	out := SongFromRow(map[string]string{"ba": "2", "song_number": "3", "song_name": "x"})
	assert.Nil(t, out.ScoreLink)
	assert.Nil(t, out.AudioLink)
}

func TestScheduleFromRow(t *testing.T) {
	base := map[string]string{
		"schedule_date":     "2024/3/5",
		"venue":             "スタジオA",
		"start_time":        "18:00",
		"end_time":          "21:00",
		"rehearsal_type":    "music",
		"rehearsal_content": "act one",
		"target_songs":      "[7, 8]",
		"target_roles":      `["lead"]`,
	}

	t.Run("normalizes the date and parses set fields", func(t *testing.T) {
		e, issues, err := ScheduleFromRow(base, 1)
		require.NoError(t, err)
		assert.Empty(t, issues)
		assert.Equal(t, "2024-03-05", e.ScheduleDate)
		assert.Equal(t, []uint64{7, 8}, e.TargetSongs)
		assert.Equal(t, []string{"lead"}, e.TargetRoles)
	})

	t.Run("tolerates quoted set cells", func(t *testing.T) {
		row := map[string]string{}
		for k, v := range base {
			row[k] = v
		}
		row["target_songs"] = ` "[7,8]" `
		e, issues, err := ScheduleFromRow(row, 1)
		require.NoError(t, err)
		assert.Empty(t, issues)
		assert.Equal(t, []uint64{7, 8}, e.TargetSongs)
	})

	t.Run("bad set field is row-local and imports unset", func(t *testing.T) {
		row := map[string]string{}
		for k, v := range base {
			row[k] = v
		}
		row["target_songs"] = "[7, oops]"
		e, issues, err := ScheduleFromRow(row, 4)
		require.NoError(t, err, "a bad set field must not fail the row")
		require.Len(t, issues, 1)
		assert.Equal(t, "target_songs", issues[0].Field)
		assert.Equal(t, 4, issues[0].Line)
		assert.Nil(t, e.TargetSongs)
		assert.Equal(t, []string{"lead"}, e.TargetRoles, "other fields keep their values")
	})

	t.Run("bad date fails the row", func(t *testing.T) {
		row := map[string]string{}
		for k, v := range base {
			row[k] = v
		}
		row["schedule_date"] = "march 5"
		_, _, err := ScheduleFromRow(row, 2)
		var issue *RowIssue
		require.ErrorAs(t, err, &issue)
		assert.Equal(t, "schedule_date", issue.Field)
	})

	t.Run("empty set cells import unset without issues", func(t *testing.T) {
		row := map[string]string{}
		for k, v := range base {
			row[k] = v
		}
		row["target_songs"] = ""
		row["target_roles"] = ""
		e, issues, err := ScheduleFromRow(row, 1)
		require.NoError(t, err)
		assert.Empty(t, issues)
		assert.Nil(t, e.TargetSongs)
		assert.Nil(t, e.TargetRoles)
	})
}

func TestScheduleToRow(t *testing.T) {
	e := model.ScheduleEntry{
		ScheduleDate: "2024-03-05",
		Venue:        "hall",
		StartTime:    "10:00",
		TargetSongs:  []uint64{1, 2},
	}
	row := ScheduleToRow(e)
	require.Len(t, row, len(ScheduleFields))
	assert.Equal(t, "[1,2]", row[6])
	assert.Equal(t, "[]", row[7], "nil sets export as empty arrays")
}
