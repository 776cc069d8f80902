package model

import "time"

type ScheduleStatus string

const (
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusPaused    ScheduleStatus = "paused"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
	ScheduleStatusCompleted ScheduleStatus = "completed"
)

// CanTransitionTo encodes the schedule lifecycle: active and paused swap
// freely, either may be cancelled or completed, and both cancelled and
// completed are terminal.
func (s ScheduleStatus) CanTransitionTo(next ScheduleStatus) bool {
	switch s {
	case ScheduleStatusActive:
		return next == ScheduleStatusPaused || next == ScheduleStatusCancelled || next == ScheduleStatusCompleted
	case ScheduleStatusPaused:
		return next == ScheduleStatusActive || next == ScheduleStatusCancelled || next == ScheduleStatusCompleted
	}
	return false
}

// Occupying reports whether a schedule in this status still holds the
// trainer's time for conflict purposes. Paused classes are expected to
// resume, so they keep their slot; cancelled and completed ones free it.
func (s ScheduleStatus) Occupying() bool {
	return s == ScheduleStatusActive || s == ScheduleStatusPaused
}

// Schedule is one weekly class booking: a trainer teaching a course slot on
// a fixed weekday of a given week. Multiple students may share one
// (course, trainer, day, slot) batch; any other overlap on the trainer's
// time is a conflict.
type Schedule struct {
	ID           int64          `json:"id"`
	CourseID     int64          `json:"course_id"`
	StudentID    *int64         `json:"student_id"`
	TrainerID    *int64         `json:"trainer_id"`
	WeekStart    time.Time      `json:"week_start"`  // date anchoring the week
	DayOfWeek    int            `json:"day_of_week"` // 0 = Sunday, 6 = Saturday
	TimeSlot     string         `json:"time_slot"`   // canonical "HH:MM-HH:MM"
	StartMinutes int            `json:"start_minutes"`
	EndMinutes   int            `json:"end_minutes"`
	Status       ScheduleStatus `json:"status"`
	CreatedBy    int64          `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Convenience fields populated on reads with joins, not stored.
	Course  *Course `json:"course,omitempty"`
	Student *User   `json:"student,omitempty"`
	Trainer *User   `json:"trainer,omitempty"`
}
