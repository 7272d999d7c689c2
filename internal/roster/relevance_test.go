package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aoihana/koubanhyou-server/internal/model"
)

func TestIsRelevant(t *testing.T) {
	lead := model.Member{ID: 1, Role: "lead"}
	ensemble := model.Member{ID: 2, Role: "ensemble"}

	matrix := Matrix{}
	matrix.Set(1, 7, true)  // lead sings song 7
	matrix.Set(1, 8, false) // toggled off again
	matrix.Set(2, 8, true)  // ensemble sings song 8

	t.Run("no target songs is never relevant", func(t *testing.T) {
		entry := model.ScheduleEntry{ID: 10, TargetSongs: nil}
		assert.False(t, IsRelevant(entry, lead, matrix))
		entry.TargetSongs = []uint64{}
		assert.False(t, IsRelevant(entry, lead, matrix))
	})

	t.Run("role targeting excludes before song matching", func(t *testing.T) {
		entry := model.ScheduleEntry{
			ID:          11,
			TargetSongs: []uint64{7, 8},
			TargetRoles: []string{"other-role"},
		}
		// Lead is assigned to song 7, but the role filter wins.
		assert.False(t, IsRelevant(entry, lead, matrix))
	})

	t.Run("assigned targeted song makes the entry relevant", func(t *testing.T) {
		entry := model.ScheduleEntry{ID: 12, TargetSongs: []uint64{7, 8}}
		assert.True(t, IsRelevant(entry, lead, matrix))
	})

	t.Run("false assignment rows do not count", func(t *testing.T) {
		entry := model.ScheduleEntry{ID: 13, TargetSongs: []uint64{8}}
		assert.False(t, IsRelevant(entry, lead, matrix))
	})

	t.Run("matching role passes through to song matching", func(t *testing.T) {
		entry := model.ScheduleEntry{
			ID:          14,
			TargetSongs: []uint64{8},
			TargetRoles: []string{"ensemble"},
		}
		assert.True(t, IsRelevant(entry, ensemble, matrix))
		assert.False(t, IsRelevant(entry, lead, matrix))
	})

	t.Run("unassigned member is not relevant", func(t *testing.T) {
		stranger := model.Member{ID: 99, Role: "lead"}
		entry := model.ScheduleEntry{ID: 15, TargetSongs: []uint64{7, 8}}
		assert.False(t, IsRelevant(entry, stranger, matrix))
	})
}

func TestRelevanceMap(t *testing.T) {
	lead := model.Member{ID: 1, Role: "lead"}
	ensemble := model.Member{ID: 2, Role: "ensemble"}
	matrix := Matrix{}
	matrix.Set(1, 7, true)

	entries := []model.ScheduleEntry{
		{ID: 10, TargetSongs: []uint64{7}},
		{ID: 11}, // untargeted
	}

	got := RelevanceMap(entries, []model.Member{lead, ensemble}, matrix)
	assert.Equal(t, map[string]bool{"10_1": true}, got)
}

func TestRelevantEntries(t *testing.T) {
	member := model.Member{ID: 1, Role: "lead"}
	matrix := Matrix{}
	matrix.Set(1, 7, true)

	entries := []model.ScheduleEntry{
		{ID: 1, TargetSongs: []uint64{7}},
		{ID: 2, TargetSongs: []uint64{9}},
		{ID: 3, TargetSongs: []uint64{8, 7}},
	}

	got := RelevantEntries(entries, member, matrix)
	if assert.Len(t, got, 2) {
		assert.Equal(t, uint64(1), got[0].ID)
		assert.Equal(t, uint64(3), got[1].ID)
	}
}
