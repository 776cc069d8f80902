package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/juraijvu/learnms/internal/service"
)

// newHTTPErrorHandler maps service errors onto HTTP responses. Business
// conflicts and lifecycle violations are 409s with actionable messages;
// anything unrecognized is a logged 500.
func newHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var (
			code    int
			message interface{}
		)

		var httpErr *echo.HTTPError
		var conflict *service.ConflictError
		var transition *service.TransitionError
		var fieldErrs validator.ValidationErrors

		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = httpErr.Message
		case errors.As(err, &conflict):
			code = http.StatusConflict
			message = echo.Map{
				"error":                   conflict.Error(),
				"conflicting_schedule_id": conflict.ConflictingID,
				"day_of_week":             conflict.DayOfWeek,
			}
		case errors.As(err, &transition):
			code = http.StatusConflict
			message = errorMessage(transition.Error())
		case errors.As(err, &fieldErrs):
			fields := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields[fe.Field()] = fe.Tag()
			}
			code = http.StatusBadRequest
			message = echo.Map{"fields": fields}
		case errors.Is(err, service.ErrNotFound):
			code = http.StatusNotFound
			message = errorMessage(err.Error())
		case errors.Is(err, service.ErrInvalidTimeSlot), errors.Is(err, service.ErrInvalidDay):
			code = http.StatusBadRequest
			message = errorMessage(err.Error())
		default:
			code = http.StatusInternalServerError
			message = errorMessage(http.StatusText(http.StatusInternalServerError))
			logger.Error("Unhandled request error",
				zap.String("path", ctx.Request().URL.Path),
				zap.Error(err))
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(code)
		} else {
			writeErr = ctx.JSON(code, message)
		}
		if writeErr != nil {
			logger.Error("Failed to write error response", zap.Error(writeErr))
		}
	}
}

func errorMessage(msg string) echo.Map {
	return echo.Map{"error": msg}
}
