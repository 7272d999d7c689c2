package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixAssigned(t *testing.T) {
	m := Matrix{}
	assert.False(t, m.Assigned(1, 2), "missing key reads as not assigned")

	m.Set(1, 2, true)
	assert.True(t, m.Assigned(1, 2))

	m.Set(1, 2, false)
	assert.False(t, m.Assigned(1, 2), "explicit false reads the same as absent")
}

func TestWireKeys(t *testing.T) {
	assert.Equal(t, "3_14", AssignmentKey{MemberID: 3, SongID: 14}.WireKey())
	assert.Equal(t, "7_3", AttendanceKey{ScheduleID: 7, MemberID: 3}.WireKey())
}

func TestWireMaps(t *testing.T) {
	m := Matrix{}
	m.Set(1, 2, true)
	m.Set(3, 4, false)
	assert.Equal(t, map[string]bool{"1_2": true, "3_4": false}, m.WireMatrix())

	txt := "am only"
	l := Ledger{
		{ScheduleID: 5, MemberID: 1}: {Status: StatusPresent},
		{ScheduleID: 5, MemberID: 2}: {Status: StatusCustom, Text: &txt},
	}
	wire := l.WireLedger()
	assert.Equal(t, StatusPresent, wire["5_1"].Status)
	assert.Equal(t, "am only", *wire["5_2"].Text)
}
