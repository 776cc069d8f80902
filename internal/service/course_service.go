package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/repository"
)

type CourseService struct {
	courseRepo *repository.CourseRepository
	activity   activityRecorder
	logger     *zap.Logger
}

func NewCourseService(courseRepo *repository.CourseRepository, activity activityRecorder, logger *zap.Logger) *CourseService {
	return &CourseService{courseRepo: courseRepo, activity: activity, logger: logger}
}

func (s *CourseService) Create(ctx context.Context, course *model.Course, actorID int64) error {
	if course.Name == "" {
		return fmt.Errorf("course name is required")
	}
	if course.DurationWeeks <= 0 {
		return fmt.Errorf("course duration must be positive")
	}

	course.IsActive = true
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return err
	}

	s.logger.Info("Course created",
		zap.Int64("course_id", course.ID),
		zap.String("name", course.Name),
	)

	s.logActivity(ctx, actorID, "course.create", fmt.Sprintf("course %d %q", course.ID, course.Name))
	return nil
}

func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context, activeOnly bool) ([]*model.Course, error) {
	return s.courseRepo.List(ctx, activeOnly)
}

func (s *CourseService) Update(ctx context.Context, course *model.Course, actorID int64) error {
	existing, err := s.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("course: %w", ErrNotFound)
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return err
	}

	s.logger.Info("Course updated", zap.Int64("course_id", course.ID))
	s.logActivity(ctx, actorID, "course.update", fmt.Sprintf("course %d", course.ID))
	return nil
}

func (s *CourseService) logActivity(ctx context.Context, userID int64, action, detail string) {
	err := s.activity.Create(ctx, &model.ActivityLog{UserID: userID, Action: action, Detail: detail})
	if err != nil {
		s.logger.Error("Failed to record activity", zap.String("action", action), zap.Error(err))
	}
}
