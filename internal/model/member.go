package model

import "time"

// Member represents one performer in the production.  Members are
// ordered by their display number everywhere they appear.  The two
// visibility flags are independent: a member can appear in the
// koubanhyou matrix, in the rehearsal schedule, in both or in neither.
//
// Fields:
//   - ID: primary key identifier.
//   - Number: display/ordering number (unique).
//   - Role: free-text group label (e.g. "lead", "ensemble").
//   - Name: member's display name.
//   - ShowInKoubanhyou: include this member in the assignment matrix views.
//   - ShowInSchedule: include this member in the schedule views.
//   - CreatedAt: creation timestamp.
//   - UpdatedAt: last update timestamp.
type Member struct {
	ID               uint64    `json:"id"`                 // members.id
	Number           int       `json:"number"`             // members.number
	Role             string    `json:"role"`               // members.role
	Name             string    `json:"name"`               // members.name
	ShowInKoubanhyou bool      `json:"show_in_koubanhyou"` // members.show_in_koubanhyou
	ShowInSchedule   bool      `json:"show_in_schedule"`   // members.show_in_schedule
	CreatedAt        time.Time `json:"created_at"`         // members.created_at
	UpdatedAt        time.Time `json:"updated_at"`         // members.updated_at
}
