package roster

import "github.com/aoihana/koubanhyou-server/internal/model"

// IsRelevant decides whether a schedule entry concerns a member: the
// "gray cell" rule.  The read-only member view uses it to filter
// schedule rows and the admin board uses it to flag cells, so both
// surfaces must go through this one function.
//
// The checks short-circuit in order:
//  1. An entry with no target songs can never single out a member.
//  2. If roles are targeted, a member outside those roles is excluded
//     regardless of assignments.
//  3. Otherwise the member is relevant iff at least one targeted song
//     carries a true assignment for them in the matrix.
func IsRelevant(entry model.ScheduleEntry, member model.Member, matrix Matrix) bool {
	if len(entry.TargetSongs) == 0 {
		return false
	}
	if len(entry.TargetRoles) > 0 {
		found := false
		for _, role := range entry.TargetRoles {
			if role == member.Role {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, songID := range entry.TargetSongs {
		if matrix.Assigned(member.ID, songID) {
			return true
		}
	}
	return false
}

// RelevanceMap evaluates IsRelevant over every (entry, member) pair and
// returns only the true cells, keyed for the wire.  Both board payloads
// embed this map so the two UIs cannot derive relevance differently.
func RelevanceMap(entries []model.ScheduleEntry, members []model.Member, matrix Matrix) map[string]bool {
	out := make(map[string]bool)
	for _, e := range entries {
		for _, m := range members {
			if IsRelevant(e, m, matrix) {
				out[AttendanceKey{ScheduleID: e.ID, MemberID: m.ID}.WireKey()] = true
			}
		}
	}
	return out
}

// RelevantEntries filters schedule entries down to the ones relevant to
// a single member, preserving order.
func RelevantEntries(entries []model.ScheduleEntry, member model.Member, matrix Matrix) []model.ScheduleEntry {
	out := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if IsRelevant(e, member, matrix) {
			out = append(out, e)
		}
	}
	return out
}
