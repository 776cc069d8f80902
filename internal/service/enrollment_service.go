package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/repository"
)

type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	courseRepo     *repository.CourseRepository
	userRepo       *repository.UserRepository
	activity       activityRecorder
	logger         *zap.Logger
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	activity activityRecorder,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		activity:       activity,
		logger:         logger,
	}
}

// Enroll places a student into an active course. Duplicate live
// enrollments are rejected.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID, studentID, actorID int64) (*model.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil || !course.IsActive {
		return nil, fmt.Errorf("course: %w", ErrNotFound)
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil || student.Role != model.RoleStudent {
		return nil, fmt.Errorf("student: %w", ErrNotFound)
	}

	exists, err := s.enrollmentRepo.Exists(ctx, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("student is already enrolled in this course")
	}

	enrollment := &model.Enrollment{
		CourseID:  courseID,
		StudentID: studentID,
		Status:    model.EnrollmentStatusActive,
		CreatedBy: actorID,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info("Student enrolled",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("course_id", courseID),
		zap.Int64("student_id", studentID),
	)

	s.logActivity(ctx, actorID, "enrollment.create",
		fmt.Sprintf("student %d into course %d", studentID, courseID))

	enrollment.Course = course
	enrollment.Student = student
	return enrollment, nil
}

func (s *EnrollmentService) ByStudent(ctx context.Context, studentID int64) ([]*model.Enrollment, error) {
	return s.enrollmentRepo.GetByStudentID(ctx, studentID)
}

func (s *EnrollmentService) ByCourse(ctx context.Context, courseID int64) ([]*model.Enrollment, error) {
	return s.enrollmentRepo.GetByCourseID(ctx, courseID)
}

func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int64, status model.EnrollmentStatus, actorID int64) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return fmt.Errorf("enrollment: %w", ErrNotFound)
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logActivity(ctx, actorID, "enrollment.status",
		fmt.Sprintf("enrollment %d -> %s", id, status))
	return nil
}

func (s *EnrollmentService) logActivity(ctx context.Context, userID int64, action, detail string) {
	err := s.activity.Create(ctx, &model.ActivityLog{UserID: userID, Action: action, Detail: detail})
	if err != nil {
		s.logger.Error("Failed to record activity", zap.String("action", action), zap.Error(err))
	}
}
