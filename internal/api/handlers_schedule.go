package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/render"
	"github.com/juraijvu/learnms/internal/service"
)

type createScheduleRequest struct {
	CourseID  int64  `json:"course_id" validate:"required"`
	StudentID *int64 `json:"student_id"`
	TrainerID int64  `json:"trainer_id" validate:"required"`
	WeekStart string `json:"week_start" validate:"required"` // YYYY-MM-DD
	Days      []int  `json:"days" validate:"required,min=1,dive,min=0,max=6"`
	TimeSlot  string `json:"time_slot" validate:"required"`
}

type checkConflictRequest struct {
	CourseID  int64  `json:"course_id" validate:"required"`
	TrainerID int64  `json:"trainer_id" validate:"required"`
	DayOfWeek *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	WeekStart string `json:"week_start" validate:"required"`
	TimeSlot  string `json:"time_slot" validate:"required"`
}

type changeStatusRequest struct {
	Status model.ScheduleStatus `json:"status" validate:"required,oneof=active paused cancelled completed"`
}

// listSlots returns the full bookable-slot universe for UI pickers.
func (s *Server) listSlots(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.opts.Schedules.AvailableSlots())
}

func (s *Server) createSchedule(ctx echo.Context) error {
	var req createScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		return err
	}

	schedules, err := s.opts.Schedules.CreateWeekly(ctx.Request().Context(), service.CreateScheduleRequest{
		CourseID:  req.CourseID,
		StudentID: req.StudentID,
		TrainerID: req.TrainerID,
		WeekStart: weekStart,
		Days:      req.Days,
		TimeSlot:  req.TimeSlot,
		CreatedBy: currentUser(ctx).ID,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, schedules)
}

// checkConflict is a dry-run of the booking decision for the scheduling UI.
func (s *Server) checkConflict(ctx echo.Context) error {
	var req checkConflictRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		return err
	}

	result, err := s.opts.Schedules.CheckConflict(ctx.Request().Context(), req.CourseID, req.TrainerID, *req.DayOfWeek, weekStart, req.TimeSlot)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}

func (s *Server) changeScheduleStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req changeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	schedule, err := s.opts.Schedules.ChangeStatus(ctx.Request().Context(), id, req.Status, currentUser(ctx).ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, schedule)
}

// trainerWeek returns one week of a trainer's schedules. Trainers may only
// read their own; staff may read anyone's.
func (s *Server) trainerWeek(ctx echo.Context) error {
	trainerID, weekStart, err := s.trainerWeekParams(ctx)
	if err != nil {
		return err
	}

	schedules, err := s.opts.Schedules.TrainerWeek(ctx.Request().Context(), trainerID, weekStart)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, schedules)
}

// trainerWeekImage renders the same week as a PNG timetable grid.
func (s *Server) trainerWeekImage(ctx echo.Context) error {
	trainerID, weekStart, err := s.trainerWeekParams(ctx)
	if err != nil {
		return err
	}

	schedules, err := s.opts.Schedules.TrainerWeek(ctx.Request().Context(), trainerID, weekStart)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Week of %s", service.NormalizeWeekStart(weekStart).Format("2006-01-02"))
	image, err := render.WeekImage(title, schedules)
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, "image/png", image)
}

func (s *Server) trainerWeekParams(ctx echo.Context) (int64, time.Time, error) {
	trainerID, err := pathID(ctx)
	if err != nil {
		return 0, time.Time{}, err
	}

	user := currentUser(ctx)
	if user.Role == model.RoleTrainer && user.ID != trainerID {
		return 0, time.Time{}, errForbidden
	}
	if user.Role == model.RoleStudent {
		return 0, time.Time{}, errForbidden
	}

	week := ctx.QueryParam("week")
	if week == "" {
		return trainerID, time.Now(), nil
	}
	weekStart, err := parseDate(week)
	if err != nil {
		return 0, time.Time{}, err
	}
	return trainerID, weekStart, nil
}

// mySchedules lists the caller's own bookings: by student for students, by
// trainer for trainers.
func (s *Server) mySchedules(ctx echo.Context) error {
	user := currentUser(ctx)

	switch user.Role {
	case model.RoleStudent:
		schedules, err := s.opts.Schedules.StudentSchedules(ctx.Request().Context(), user.ID)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, schedules)
	case model.RoleTrainer:
		week := time.Now()
		if v := ctx.QueryParam("week"); v != "" {
			parsed, err := parseDate(v)
			if err != nil {
				return err
			}
			week = parsed
		}
		schedules, err := s.opts.Schedules.TrainerWeek(ctx.Request().Context(), user.ID, week)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, schedules)
	}

	return errForbidden
}

func pathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "dates must be YYYY-MM-DD")
	}
	return t, nil
}
