package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juraijvu/learnms/internal/model"
)

type fakeScheduleStore struct {
	schedules []*model.Schedule
	nextID    int64
	createErr error
}

func (f *fakeScheduleStore) CreateBatch(_ context.Context, schedules []*model.Schedule) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, s := range schedules {
		f.nextID++
		s.ID = f.nextID
		f.schedules = append(f.schedules, s)
	}
	return nil
}

func (f *fakeScheduleStore) GetByID(_ context.Context, id int64) (*model.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleStore) GetByTrainerID(_ context.Context, trainerID int64) ([]*model.Schedule, error) {
	var out []*model.Schedule
	for _, s := range f.schedules {
		if s.TrainerID != nil && *s.TrainerID == trainerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) GetTrainerWeek(_ context.Context, trainerID int64, weekStart time.Time) ([]*model.Schedule, error) {
	var out []*model.Schedule
	for _, s := range f.schedules {
		if s.TrainerID != nil && *s.TrainerID == trainerID && s.WeekStart.Equal(weekStart) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) GetByStudentID(_ context.Context, studentID int64) ([]*model.Schedule, error) {
	var out []*model.Schedule
	for _, s := range f.schedules {
		if s.StudentID != nil && *s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) UpdateStatus(_ context.Context, id int64, status model.ScheduleStatus) error {
	for _, s := range f.schedules {
		if s.ID == id {
			s.Status = status
			return nil
		}
	}
	return errors.New("schedule not found")
}

type fakeUserStore struct {
	users map[int64]*model.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	return f.users[id], nil
}

type fakeCourseStore struct {
	courses map[int64]*model.Course
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*model.Course, error) {
	return f.courses[id], nil
}

type fakeActivity struct {
	entries []*model.ActivityLog
}

func (f *fakeActivity) Create(_ context.Context, entry *model.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

const (
	trainerID     = int64(10)
	studentID     = int64(20)
	courseID      = int64(1)
	otherCourseID = int64(2)
	salesID       = int64(30)
)

func newTestService(store *fakeScheduleStore) *ScheduleService {
	users := &fakeUserStore{users: map[int64]*model.User{
		trainerID:     {ID: trainerID, Name: "T", Email: "t@example.com", Role: model.RoleTrainer},
		studentID:     {ID: studentID, Name: "S", Email: "s@example.com", Role: model.RoleStudent},
		studentID + 1: {ID: studentID + 1, Name: "S2", Email: "s2@example.com", Role: model.RoleStudent},
		salesID:       {ID: salesID, Name: "C", Email: "c@example.com", Role: model.RoleSales},
	}}
	courses := &fakeCourseStore{courses: map[int64]*model.Course{
		courseID:      {ID: courseID, Name: "Go Basics", IsActive: true, DurationWeeks: 8},
		otherCourseID: {ID: otherCourseID, Name: "SQL Basics", IsActive: true, DurationWeeks: 6},
	}}
	return NewScheduleService(store, users, courses, &fakeActivity{}, nil, zap.NewNop())
}

func week() time.Time {
	// A Monday; the service normalizes it to the Sunday anchor.
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func existingSchedule(day int, slot string, status model.ScheduleStatus) *model.Schedule {
	tid := trainerID
	start, end, _ := parseForTest(slot)
	return &model.Schedule{
		ID:           1,
		CourseID:     courseID,
		TrainerID:    &tid,
		WeekStart:    NormalizeWeekStart(week()),
		DayOfWeek:    day,
		TimeSlot:     slot,
		StartMinutes: start,
		EndMinutes:   end,
		Status:       status,
	}
}

func parseForTest(slot string) (int, int, bool) {
	h1 := int(slot[0]-'0')*10 + int(slot[1]-'0')
	m1 := int(slot[3]-'0')*10 + int(slot[4]-'0')
	h2 := int(slot[6]-'0')*10 + int(slot[7]-'0')
	m2 := int(slot[9]-'0')*10 + int(slot[10]-'0')
	return h1*60 + m1, h2*60 + m2, true
}

func TestCheckConflict_OverlappingSlotRejected(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	result, err := svc.CheckConflict(context.Background(), otherCourseID, trainerID, 1, week(), "10:00-12:00")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(1), result.ConflictingID)
	assert.Equal(t, "Trainer is busy with another course during that time", result.Reason)
}

func TestCheckConflict_BackToBackSlotAllowed(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	result, err := svc.CheckConflict(context.Background(), otherCourseID, trainerID, 1, week(), "11:00-13:00")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCheckConflict_CrossDayIndependence(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	// Same slot, different weekday: no conflict.
	result, err := svc.CheckConflict(context.Background(), otherCourseID, trainerID, 2, week(), "09:00-11:00")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCheckConflict_OccupancyPolicy(t *testing.T) {
	tests := []struct {
		status  model.ScheduleStatus
		allowed bool
	}{
		{model.ScheduleStatusActive, false},
		{model.ScheduleStatusPaused, false},
		{model.ScheduleStatusCancelled, true},
		{model.ScheduleStatusCompleted, true},
	}

	for _, tt := range tests {
		store := &fakeScheduleStore{nextID: 1}
		store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", tt.status))
		svc := newTestService(store)

		result, err := svc.CheckConflict(context.Background(), otherCourseID, trainerID, 1, week(), "10:00-12:00")
		require.NoError(t, err)
		assert.Equal(t, tt.allowed, result.Allowed, string(tt.status))
	}
}

func TestCheckConflict_DifferentWeekAllowed(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	nextWeek := week().AddDate(0, 0, 7)
	result, err := svc.CheckConflict(context.Background(), otherCourseID, trainerID, 1, nextWeek, "09:00-11:00")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCheckConflict_MalformedSlotIsAnError(t *testing.T) {
	svc := newTestService(&fakeScheduleStore{})

	_, err := svc.CheckConflict(context.Background(), courseID, trainerID, 1, week(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestCreateWeekly_BooksAllRequestedDays(t *testing.T) {
	store := &fakeScheduleStore{}
	svc := newTestService(store)

	sid := studentID
	schedules, err := svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID:  courseID,
		StudentID: &sid,
		TrainerID: trainerID,
		WeekStart: week(),
		Days:      []int{1, 3, 5},
		TimeSlot:  "09:00-11:00",
		CreatedBy: salesID,
	})
	require.NoError(t, err)
	require.Len(t, schedules, 3)

	for i, day := range []int{1, 3, 5} {
		assert.Equal(t, day, schedules[i].DayOfWeek)
		assert.Equal(t, model.ScheduleStatusActive, schedules[i].Status)
		assert.Equal(t, 540, schedules[i].StartMinutes)
		assert.Equal(t, 660, schedules[i].EndMinutes)
	}

	// A Monday anchor normalizes back to the Sunday of the same week.
	assert.Equal(t, time.Weekday(time.Sunday), schedules[0].WeekStart.Weekday())
}

func TestCreateWeekly_AllOrNothingOnConflict(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(5, "10:00-12:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	_, err := svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID:  courseID,
		TrainerID: trainerID,
		WeekStart: week(),
		Days:      []int{1, 3, 5}, // day 5 conflicts
		TimeSlot:  "09:00-11:00",
		CreatedBy: salesID,
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 5, conflict.DayOfWeek)
	assert.Equal(t, int64(1), conflict.ConflictingID)

	// Days 1 and 3 were not committed either.
	assert.Len(t, store.schedules, 1)
}

func TestCreateWeekly_SecondStudentJoinsBatch(t *testing.T) {
	store := &fakeScheduleStore{}
	svc := newTestService(store)

	// The same course at the exact same slot is one batch: a second student
	// books into it rather than conflicting with it.
	first := studentID
	_, err := svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID:  courseID,
		StudentID: &first,
		TrainerID: trainerID,
		WeekStart: week(),
		Days:      []int{1},
		TimeSlot:  "09:00-11:00",
		CreatedBy: salesID,
	})
	require.NoError(t, err)

	second := first + 1
	schedules, err := svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID:  courseID,
		StudentID: &second,
		TrainerID: trainerID,
		WeekStart: week(),
		Days:      []int{1},
		TimeSlot:  "09:00-11:00",
		CreatedBy: salesID,
	})
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Len(t, store.schedules, 2)
}

func TestCheckConflict_BatchCarveOutIsCourseAndSlotExact(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	// Same course, identical slot: batch, allowed.
	result, err := svc.CheckConflict(context.Background(), courseID, trainerID, 1, week(), "09:00-11:00")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	// Different course at the occupied slot: still a conflict.
	result, err = svc.CheckConflict(context.Background(), otherCourseID, trainerID, 1, week(), "09:00-11:00")
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// Same course but a merely overlapping slot is not the batch.
	result, err = svc.CheckConflict(context.Background(), courseID, trainerID, 1, week(), "10:00-12:00")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestCreateWeekly_ConstraintViolationMapsToConflict(t *testing.T) {
	store := &fakeScheduleStore{createErr: &pgconn.PgError{Code: "23P01"}}
	svc := newTestService(store)

	_, err := svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID:  courseID,
		TrainerID: trainerID,
		WeekStart: week(),
		Days:      []int{1},
		TimeSlot:  "09:00-11:00",
		CreatedBy: salesID,
	})

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCreateWeekly_RejectsInvalidInput(t *testing.T) {
	svc := newTestService(&fakeScheduleStore{})

	_, err := svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID: courseID, TrainerID: trainerID, WeekStart: week(),
		Days: []int{1}, TimeSlot: "09:00-10:30", CreatedBy: salesID,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID: courseID, TrainerID: trainerID, WeekStart: week(),
		Days: []int{7}, TimeSlot: "09:00-11:00", CreatedBy: salesID,
	})
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID: courseID, TrainerID: trainerID, WeekStart: week(),
		Days: nil, TimeSlot: "09:00-11:00", CreatedBy: salesID,
	})
	assert.Error(t, err)
}

func TestCreateWeekly_UnknownTrainerRejected(t *testing.T) {
	svc := newTestService(&fakeScheduleStore{})

	_, err := svc.CreateWeekly(context.Background(), CreateScheduleRequest{
		CourseID: courseID, TrainerID: 999, WeekStart: week(),
		Days: []int{1}, TimeSlot: "09:00-11:00", CreatedBy: salesID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeStatus_Lifecycle(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	schedule, err := svc.ChangeStatus(context.Background(), 1, model.ScheduleStatusPaused, salesID)
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusPaused, schedule.Status)

	schedule, err = svc.ChangeStatus(context.Background(), 1, model.ScheduleStatusCancelled, salesID)
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusCancelled, schedule.Status)

	// cancelled is terminal
	_, err = svc.ChangeStatus(context.Background(), 1, model.ScheduleStatusActive, salesID)
	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, model.ScheduleStatusCancelled, transition.From)
}

func TestChangeStatus_FreesTheSlot(t *testing.T) {
	store := &fakeScheduleStore{nextID: 1}
	store.schedules = append(store.schedules, existingSchedule(1, "09:00-11:00", model.ScheduleStatusActive))
	svc := newTestService(store)

	_, err := svc.ChangeStatus(context.Background(), 1, model.ScheduleStatusCancelled, salesID)
	require.NoError(t, err)

	result, err := svc.CheckConflict(context.Background(), otherCourseID, trainerID, 1, week(), "09:00-11:00")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestNormalizeWeekStart(t *testing.T) {
	// 2024-01-01 is a Monday; its week anchor is Sunday 2023-12-31.
	anchor := NormalizeWeekStart(time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), anchor)

	// Every day of that week maps to the same anchor.
	for i := 0; i < 7; i++ {
		day := time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		assert.Equal(t, anchor, NormalizeWeekStart(day), day.String())
	}
}
