package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/repository/base"
)

type EnrollmentRepository struct {
	*base.Repository
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{Repository: base.NewRepository(pool)}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	query := `
		INSERT INTO enrollments (course_id, student_id, status, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		enrollment.CourseID,
		enrollment.StudentID,
		enrollment.Status,
		enrollment.CreatedBy,
	).Scan(&enrollment.ID, &enrollment.CreatedAt)

	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	query := `
		SELECT id, course_id, student_id, status, created_by, created_at
		FROM enrollments
		WHERE id = $1
	`

	var enrollment model.Enrollment
	err := r.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.CourseID,
		&enrollment.StudentID,
		&enrollment.Status,
		&enrollment.CreatedBy,
		&enrollment.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enrollment by id: %w", err)
	}

	return &enrollment, nil
}

// Exists reports whether the student already holds a non-dropped enrollment
// in the course.
func (r *EnrollmentRepository) Exists(ctx context.Context, courseID, studentID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE course_id = $1 AND student_id = $2 AND status <> 'dropped'
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, courseID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check enrollment exists: %w", err)
	}

	return exists, nil
}

func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Enrollment, error) {
	return r.list(ctx, `WHERE e.student_id = $1`, studentID)
}

func (r *EnrollmentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*model.Enrollment, error) {
	return r.list(ctx, `WHERE e.course_id = $1`, courseID)
}

func (r *EnrollmentRepository) list(ctx context.Context, where string, arg interface{}) ([]*model.Enrollment, error) {
	query := `
		SELECT e.id, e.course_id, e.student_id, e.status, e.created_by, e.created_at,
		       c.id, c.name, c.description, c.duration_weeks, c.fee, c.is_active, c.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
	` + where + ` ORDER BY e.created_at DESC`

	rows, err := r.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*model.Enrollment
	for rows.Next() {
		var enrollment model.Enrollment
		var course model.Course
		err := rows.Scan(
			&enrollment.ID,
			&enrollment.CourseID,
			&enrollment.StudentID,
			&enrollment.Status,
			&enrollment.CreatedBy,
			&enrollment.CreatedAt,
			&course.ID,
			&course.Name,
			&course.Description,
			&course.DurationWeeks,
			&course.Fee,
			&course.IsActive,
			&course.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		enrollment.Course = &course
		enrollments = append(enrollments, &enrollment)
	}

	return enrollments, nil
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status model.EnrollmentStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE enrollments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("enrollment not found")
	}
	return nil
}
