package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juraijvu/learnms/internal/model"
)

type courseRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,min=1"`
	Fee           int    `json:"fee" validate:"min=0"`
	IsActive      *bool  `json:"is_active"`
}

func (s *Server) listCourses(ctx echo.Context) error {
	// Non-staff callers only see active courses.
	user := currentUser(ctx)
	activeOnly := user.Role == model.RoleStudent || user.Role == model.RoleTrainer

	courses, err := s.opts.Courses.List(ctx.Request().Context(), activeOnly)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, courses)
}

func (s *Server) createCourse(ctx echo.Context) error {
	var req courseRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	course := &model.Course{
		Name:          req.Name,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
		Fee:           req.Fee,
	}

	if err := s.opts.Courses.Create(ctx.Request().Context(), course, currentUser(ctx).ID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, course)
}

func (s *Server) updateCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req courseRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	course := &model.Course{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
		Fee:           req.Fee,
		IsActive:      isActive,
	}

	if err := s.opts.Courses.Update(ctx.Request().Context(), course, currentUser(ctx).ID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, course)
}
