package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/repository/base"
)

const scheduleColumns = `
	id, course_id, student_id, trainer_id, week_start, day_of_week,
	time_slot, start_minutes, end_minutes, status, created_by, created_at, updated_at
`

type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(pool)}
}

// CreateBatch inserts all schedules in one transaction, all-or-nothing. A
// multi-day booking either lands completely or not at all; if any insert
// trips the trainer-occupancy exclusion constraint the whole batch rolls
// back and the constraint error is returned for the caller to map.
func (r *ScheduleRepository) CreateBatch(ctx context.Context, schedules []*model.Schedule) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO schedules (course_id, student_id, trainer_id, week_start, day_of_week,
		                       time_slot, start_minutes, end_minutes, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	for _, schedule := range schedules {
		err := tx.QueryRow(
			ctx, query,
			schedule.CourseID,
			schedule.StudentID,
			schedule.TrainerID,
			schedule.WeekStart,
			schedule.DayOfWeek,
			schedule.TimeSlot,
			schedule.StartMinutes,
			schedule.EndMinutes,
			schedule.Status,
			schedule.CreatedBy,
		).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)

		if err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := scanSchedule(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}

	return schedule, nil
}

// GetByTrainerID returns every schedule held by a trainer, regardless of
// status. The conflict checker applies the occupancy policy itself.
func (r *ScheduleRepository) GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE trainer_id = $1
		ORDER BY week_start, day_of_week, start_minutes
	`
	return r.list(ctx, query, trainerID)
}

// GetTrainerWeek returns a trainer's schedules for one anchored week.
func (r *ScheduleRepository) GetTrainerWeek(ctx context.Context, trainerID int64, weekStart time.Time) ([]*model.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE trainer_id = $1 AND week_start = $2
		ORDER BY day_of_week, start_minutes
	`
	return r.list(ctx, query, trainerID, weekStart)
}

func (r *ScheduleRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE student_id = $1
		ORDER BY week_start, day_of_week, start_minutes
	`
	return r.list(ctx, query, studentID)
}

func (r *ScheduleRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Schedule, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*model.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	return schedules, nil
}

// UpdateStatus persists a status change. The lifecycle check belongs to the
// service; this only touches the row.
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id int64, status model.ScheduleStatus) error {
	query := `
		UPDATE schedules
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}

func scanSchedule(row pgx.Row) (*model.Schedule, error) {
	var schedule model.Schedule
	err := row.Scan(
		&schedule.ID,
		&schedule.CourseID,
		&schedule.StudentID,
		&schedule.TrainerID,
		&schedule.WeekStart,
		&schedule.DayOfWeek,
		&schedule.TimeSlot,
		&schedule.StartMinutes,
		&schedule.EndMinutes,
		&schedule.Status,
		&schedule.CreatedBy,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}
