package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juraijvu/learnms/internal/model"
)

type createEnrollmentRequest struct {
	CourseID  int64 `json:"course_id" validate:"required"`
	StudentID int64 `json:"student_id" validate:"required"`
}

type enrollmentStatusRequest struct {
	Status model.EnrollmentStatus `json:"status" validate:"required,oneof=active completed dropped"`
}

func (s *Server) createEnrollment(ctx echo.Context) error {
	var req createEnrollmentRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	enrollment, err := s.opts.Enrollments.Enroll(ctx.Request().Context(), req.CourseID, req.StudentID, currentUser(ctx).ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, enrollment)
}

func (s *Server) changeEnrollmentStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req enrollmentStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	if err := s.opts.Enrollments.UpdateStatus(ctx.Request().Context(), id, req.Status, currentUser(ctx).ID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) courseEnrollments(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	enrollments, err := s.opts.Enrollments.ByCourse(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, enrollments)
}

func (s *Server) myEnrollments(ctx echo.Context) error {
	enrollments, err := s.opts.Enrollments.ByStudent(ctx.Request().Context(), currentUser(ctx).ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, enrollments)
}
