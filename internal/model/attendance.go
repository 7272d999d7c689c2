package model

import "time"

// AttendanceCell is one member's attendance mark for one schedule
// entry.  Status holds one of the three symbols (○, △, ×) or the
// literal tag "text", in which case CustomText carries the free-form
// value.  For the symbol statuses CustomText is always nil.  A cell
// that was never set has no row at all.
type AttendanceCell struct {
	ScheduleID uint64    `json:"schedule_id"` // schedule_attendance.schedule_id
	MemberID   uint64    `json:"member_id"`   // schedule_attendance.member_id
	Status     string    `json:"status"`      // schedule_attendance.attendance_status
	CustomText *string   `json:"text"`        // schedule_attendance.custom_text (nullable)
	CreatedAt  time.Time `json:"created_at"`  // schedule_attendance.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // schedule_attendance.updated_at
}
