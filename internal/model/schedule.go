package model

import "time"

// ScheduleEntry represents one rehearsal slot.  The (ScheduleDate,
// Venue, StartTime) triple is the natural key used to detect duplicates
// on CSV import.  TargetSongs and TargetRoles narrow which members the
// slot concerns; both empty means the entry is untargeted and never
// singles out a member.
//
// Fields:
//   - ID: primary key identifier.
//   - ScheduleDate: rehearsal date, always "YYYY-MM-DD".
//   - Venue: rehearsal location.
//   - StartTime: start of the slot ("HH:MM").
//   - EndTime: end of the slot ("HH:MM").
//   - RehearsalType: kind of rehearsal (music, staging, run-through...).
//   - RehearsalContent: free-text description of what is rehearsed.
//   - TargetSongs: ids of the songs this slot rehearses.
//   - TargetRoles: role labels this slot is restricted to.
//   - CreatedAt: creation timestamp.
//   - UpdatedAt: last update timestamp.
type ScheduleEntry struct {
	ID               uint64    `json:"id"`                // schedules.id
	ScheduleDate     string    `json:"schedule_date"`     // schedules.schedule_date
	Venue            string    `json:"venue"`             // schedules.venue
	StartTime        string    `json:"start_time"`        // schedules.start_time
	EndTime          string    `json:"end_time"`          // schedules.end_time
	RehearsalType    string    `json:"rehearsal_type"`    // schedules.rehearsal_type
	RehearsalContent string    `json:"rehearsal_content"` // schedules.rehearsal_content
	TargetSongs      []uint64  `json:"target_songs"`      // schedules.target_songs (JSON text)
	TargetRoles      []string  `json:"target_roles"`      // schedules.target_roles (JSON text)
	CreatedAt        time.Time `json:"created_at"`        // schedules.created_at
	UpdatedAt        time.Time `json:"updated_at"`        // schedules.updated_at
}
