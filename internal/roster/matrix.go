// Package roster holds the pure domain rules of the rehearsal app: the
// koubanhyou assignment matrix, the schedule relevance predicate and
// the attendance cell state machine.  Nothing in this package touches
// the database or the HTTP layer, so every function here is safe to
// call per cell on every render.
package roster

import "strconv"

// AssignmentKey identifies one cell of the koubanhyou matrix.
type AssignmentKey struct {
	MemberID uint64
	SongID   uint64
}

// AttendanceKey identifies one cell of the schedule attendance grid.
type AttendanceKey struct {
	ScheduleID uint64
	MemberID   uint64
}

// Matrix is the member×song assignment relation.  A missing key reads
// as "not assigned"; rows toggled back to false may be present with a
// false value, which reads the same.
type Matrix map[AssignmentKey]bool

// Assigned reports whether the member is assigned to the song.
func (m Matrix) Assigned(memberID, songID uint64) bool {
	return m[AssignmentKey{MemberID: memberID, SongID: songID}]
}

// Set records an assignment value for the pair.
func (m Matrix) Set(memberID, songID uint64, assigned bool) {
	m[AssignmentKey{MemberID: memberID, SongID: songID}] = assigned
}

// Cell is the in-memory value of one attendance cell.  Status is one of
// the symbol statuses or StatusCustom; Text is non-nil only for
// StatusCustom.
type Cell struct {
	Status string  `json:"status"`
	Text   *string `json:"text"`
}

// Ledger is the schedule×member attendance relation.  A missing key
// means the cell was never set and displays empty.
type Ledger map[AttendanceKey]Cell

// WireKey renders an AssignmentKey in the "<member>_<song>" form the
// JSON API uses.  JSON objects cannot carry struct keys, so the
// composite key is flattened only at the transport boundary.
func (k AssignmentKey) WireKey() string {
	return strconv.FormatUint(k.MemberID, 10) + "_" + strconv.FormatUint(k.SongID, 10)
}

// WireKey renders an AttendanceKey as "<schedule>_<member>" for the
// JSON API.
func (k AttendanceKey) WireKey() string {
	return strconv.FormatUint(k.ScheduleID, 10) + "_" + strconv.FormatUint(k.MemberID, 10)
}

// WireMatrix flattens the matrix into the string-keyed object shape the
// frontends consume.
func (m Matrix) WireMatrix() map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k.WireKey()] = v
	}
	return out
}

// WireLedger flattens the attendance ledger into the string-keyed
// object shape the frontends consume.
func (l Ledger) WireLedger() map[string]Cell {
	out := make(map[string]Cell, len(l))
	for k, v := range l {
		out[k.WireKey()] = v
	}
	return out
}
