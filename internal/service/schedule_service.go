package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/notify"
	"github.com/juraijvu/learnms/internal/repository/base"
	"github.com/juraijvu/learnms/internal/timeslot"
)

// scheduleStore is the persistence contract the scheduling logic reads and
// writes through. *repository.ScheduleRepository satisfies it; tests use an
// in-memory fake.
type scheduleStore interface {
	CreateBatch(ctx context.Context, schedules []*model.Schedule) error
	GetByID(ctx context.Context, id int64) (*model.Schedule, error)
	GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.Schedule, error)
	GetTrainerWeek(ctx context.Context, trainerID int64, weekStart time.Time) ([]*model.Schedule, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*model.Schedule, error)
	UpdateStatus(ctx context.Context, id int64, status model.ScheduleStatus) error
}

type userGetter interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type courseGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Course, error)
}

type activityRecorder interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
}

// ConflictResult is the outcome of a single-day conflict check.
type ConflictResult struct {
	Allowed       bool   `json:"allowed"`
	ConflictingID int64  `json:"conflicting_schedule_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// CreateScheduleRequest books one course slot for a trainer (and optionally
// a student) on one or more weekdays of a week. Days are checked and
// committed together.
type CreateScheduleRequest struct {
	CourseID  int64
	StudentID *int64
	TrainerID int64
	WeekStart time.Time
	Days      []int
	TimeSlot  string
	CreatedBy int64
}

type ScheduleService struct {
	schedules scheduleStore
	users     userGetter
	courses   courseGetter
	activity  activityRecorder
	mailer    notify.Mailer
	logger    *zap.Logger
}

func NewScheduleService(
	schedules scheduleStore,
	users userGetter,
	courses courseGetter,
	activity activityRecorder,
	mailer notify.Mailer,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		users:     users,
		courses:   courses,
		activity:  activity,
		mailer:    mailer,
		logger:    logger,
	}
}

// AvailableSlots returns the full set of bookable slots for one day.
func (s *ScheduleService) AvailableSlots() []timeslot.Slot {
	return timeslot.Generate()
}

// CheckConflict decides whether a trainer can take the proposed slot on the
// given day and week. A business conflict is reported in the result, never
// as an error; errors are reserved for malformed input and storage failures.
//
// Occupancy is trainer-scoped with one carve-out: an existing schedule for
// the same course at the exact same slot is a batch, not a conflict, so
// more students can join an already running class.
func (s *ScheduleService) CheckConflict(ctx context.Context, courseID, trainerID int64, dayOfWeek int, weekStart time.Time, proposedSlot string) (ConflictResult, error) {
	if !timeslot.IsValid(proposedSlot) {
		return ConflictResult{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, proposedSlot)
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ConflictResult{}, ErrInvalidDay
	}

	existing, err := s.schedules.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return ConflictResult{}, fmt.Errorf("get trainer schedules: %w", err)
	}

	weekStart = NormalizeWeekStart(weekStart)
	for _, candidate := range existing {
		if candidate.DayOfWeek != dayOfWeek {
			continue
		}
		if !NormalizeWeekStart(candidate.WeekStart).Equal(weekStart) {
			continue
		}
		if !candidate.Status.Occupying() {
			continue
		}
		if candidate.CourseID == courseID && candidate.TimeSlot == proposedSlot {
			continue // batch: same course, same slot
		}
		if timeslot.Overlap(candidate.TimeSlot, proposedSlot) {
			return ConflictResult{
				Allowed:       false,
				ConflictingID: candidate.ID,
				Reason:        (&ConflictError{TrainerID: trainerID, DayOfWeek: dayOfWeek, ConflictingID: candidate.ID}).Error(),
			}, nil
		}
	}

	return ConflictResult{Allowed: true}, nil
}

// CreateWeekly validates the request, checks every requested day against
// the trainer's occupancy and commits all days in one transaction. Any
// conflicting day rejects the whole request; no partial weeks are written.
// The database exclusion constraint backs the pre-check, so a concurrent
// booking that slips past the read still surfaces as a ConflictError.
func (s *ScheduleService) CreateWeekly(ctx context.Context, req CreateScheduleRequest) ([]*model.Schedule, error) {
	if !timeslot.IsValid(req.TimeSlot) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, req.TimeSlot)
	}
	if len(req.Days) == 0 {
		return nil, fmt.Errorf("at least one day of week is required")
	}

	days := dedupeDays(req.Days)
	for _, day := range days {
		if day < 0 || day > 6 {
			return nil, ErrInvalidDay
		}
	}

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil || !course.IsActive {
		return nil, fmt.Errorf("course: %w", ErrNotFound)
	}

	trainer, err := s.users.GetByID(ctx, req.TrainerID)
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil || trainer.Role != model.RoleTrainer {
		return nil, fmt.Errorf("trainer: %w", ErrNotFound)
	}

	var student *model.User
	if req.StudentID != nil {
		student, err = s.users.GetByID(ctx, *req.StudentID)
		if err != nil {
			return nil, fmt.Errorf("get student: %w", err)
		}
		if student == nil || student.Role != model.RoleStudent {
			return nil, fmt.Errorf("student: %w", ErrNotFound)
		}
	}

	weekStart := NormalizeWeekStart(req.WeekStart)

	// Conflicts are per-day: a busy Monday says nothing about Wednesday.
	// Any one of them still fails the request as a whole.
	for _, day := range days {
		result, err := s.CheckConflict(ctx, req.CourseID, req.TrainerID, day, weekStart, req.TimeSlot)
		if err != nil {
			return nil, err
		}
		if !result.Allowed {
			return nil, &ConflictError{
				TrainerID:     req.TrainerID,
				DayOfWeek:     day,
				ConflictingID: result.ConflictingID,
			}
		}
	}

	startMinutes, endMinutes, _ := timeslot.Parse(req.TimeSlot)

	schedules := make([]*model.Schedule, 0, len(days))
	for _, day := range days {
		schedules = append(schedules, &model.Schedule{
			CourseID:     req.CourseID,
			StudentID:    req.StudentID,
			TrainerID:    &req.TrainerID,
			WeekStart:    weekStart,
			DayOfWeek:    day,
			TimeSlot:     req.TimeSlot,
			StartMinutes: startMinutes,
			EndMinutes:   endMinutes,
			Status:       model.ScheduleStatusActive,
			CreatedBy:    req.CreatedBy,
		})
	}

	if err := s.schedules.CreateBatch(ctx, schedules); err != nil {
		if base.IsConstraintViolation(err) {
			// Lost a check-then-act race; the constraint is authoritative.
			s.logger.Warn("schedule insert lost occupancy race",
				zap.Int64("trainer_id", req.TrainerID),
				zap.String("time_slot", req.TimeSlot))
			return nil, &ConflictError{TrainerID: req.TrainerID}
		}
		return nil, fmt.Errorf("create schedules: %w", err)
	}

	s.logger.Info("Weekly schedules created",
		zap.Int64("trainer_id", req.TrainerID),
		zap.Int64("course_id", req.CourseID),
		zap.Ints("days", days),
		zap.String("time_slot", req.TimeSlot),
		zap.Time("week_start", weekStart),
	)

	s.recordActivity(ctx, req.CreatedBy, "schedule.create",
		fmt.Sprintf("course %d trainer %d slot %s days %v", req.CourseID, req.TrainerID, req.TimeSlot, days))
	s.notifyScheduleCreated(ctx, course, trainer, student, schedules)

	return schedules, nil
}

// ChangeStatus applies one lifecycle transition to a schedule.
func (s *ScheduleService) ChangeStatus(ctx context.Context, id int64, next model.ScheduleStatus, actorID int64) (*model.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule: %w", ErrNotFound)
	}

	if !schedule.Status.CanTransitionTo(next) {
		return nil, &TransitionError{From: schedule.Status, To: next}
	}

	if err := s.schedules.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("update schedule status: %w", err)
	}

	s.logger.Info("Schedule status changed",
		zap.Int64("schedule_id", id),
		zap.String("from", string(schedule.Status)),
		zap.String("to", string(next)),
	)

	s.recordActivity(ctx, actorID, "schedule.status",
		fmt.Sprintf("schedule %d %s -> %s", id, schedule.Status, next))

	schedule.Status = next
	return schedule, nil
}

// TrainerWeek returns a trainer's schedules for one anchored week.
func (s *ScheduleService) TrainerWeek(ctx context.Context, trainerID int64, weekStart time.Time) ([]*model.Schedule, error) {
	return s.schedules.GetTrainerWeek(ctx, trainerID, NormalizeWeekStart(weekStart))
}

// StudentSchedules returns every schedule booked for a student.
func (s *ScheduleService) StudentSchedules(ctx context.Context, studentID int64) ([]*model.Schedule, error) {
	return s.schedules.GetByStudentID(ctx, studentID)
}

// NormalizeWeekStart anchors a date to the Sunday of its week at midnight,
// matching DayOfWeek's Sunday=0 convention. Two dates inside the same week
// always normalize to the same anchor.
func NormalizeWeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func dedupeDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	var out []int
	for _, day := range days {
		if !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}
	return out
}

// recordActivity appends an audit entry; failures are logged, never fatal.
func (s *ScheduleService) recordActivity(ctx context.Context, userID int64, action, detail string) {
	err := s.activity.Create(ctx, &model.ActivityLog{UserID: userID, Action: action, Detail: detail})
	if err != nil {
		s.logger.Error("Failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

// notifyScheduleCreated emails the trainer and student. Best effort only.
func (s *ScheduleService) notifyScheduleCreated(ctx context.Context, course *model.Course, trainer, student *model.User, schedules []*model.Schedule) {
	if s.mailer == nil || len(schedules) == 0 {
		return
	}

	subject := fmt.Sprintf("New class schedule: %s", course.Name)
	body := fmt.Sprintf("You have been scheduled for %q at %s starting the week of %s.",
		course.Name, schedules[0].TimeSlot, schedules[0].WeekStart.Format("2006-01-02"))

	recipients := []*model.User{trainer}
	if student != nil {
		recipients = append(recipients, student)
	}
	for _, user := range recipients {
		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			s.logger.Error("Failed to send schedule notification",
				zap.String("to", user.Email), zap.Error(err))
		}
	}
}
