package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/repository/base"
)

type CourseRepository struct {
	*base.Repository
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{Repository: base.NewRepository(pool)}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (name, description, duration_weeks, fee, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		course.Name,
		course.Description,
		course.DurationWeeks,
		course.Fee,
		course.IsActive,
	).Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	query := `
		SELECT id, name, description, duration_weeks, fee, is_active, created_at
		FROM courses
		WHERE id = $1
	`

	var course model.Course
	err := r.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.DurationWeeks,
		&course.Fee,
		&course.IsActive,
		&course.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}

	return &course, nil
}

// List returns courses, optionally restricted to active ones.
func (r *CourseRepository) List(ctx context.Context, activeOnly bool) ([]*model.Course, error) {
	query := `
		SELECT id, name, description, duration_weeks, fee, is_active, created_at
		FROM courses
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		var course model.Course
		err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Description,
			&course.DurationWeeks,
			&course.Fee,
			&course.IsActive,
			&course.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	query := `
		UPDATE courses
		SET name = $1, description = $2, duration_weeks = $3, fee = $4, is_active = $5
		WHERE id = $6
	`

	affected, err := r.ExecAffected(
		ctx, query,
		course.Name,
		course.Description,
		course.DurationWeeks,
		course.Fee,
		course.IsActive,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}
