package service

import (
	"errors"
	"fmt"

	"github.com/juraijvu/learnms/internal/model"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrInvalidDay      = errors.New("day of week must be between 0 and 6")
)

// ConflictError is the structured "not allowed" outcome of a booking
// attempt: the trainer already holds an overlapping slot. It is a normal
// business result, not a failure of the system.
type ConflictError struct {
	TrainerID     int64
	DayOfWeek     int
	ConflictingID int64
}

func (e *ConflictError) Error() string {
	return "Trainer is busy with another course during that time"
}

// TransitionError reports a schedule status change the lifecycle forbids.
type TransitionError struct {
	From model.ScheduleStatus
	To   model.ScheduleStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition schedule from %s to %s", e.From, e.To)
}
