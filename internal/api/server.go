// Package api exposes the LMS over a versioned REST surface consumed by
// the SPA. Route groups are gated per role by middleware; handlers stay
// thin and delegate to the services.
package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/service"
)

// Authenticator resolves a bearer token to an active user.
// *service.UserService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type Options struct {
	Addr        string
	Auth        Authenticator
	Users       *service.UserService
	Courses     *service.CourseService
	Enrollments *service.EnrollmentService
	Schedules   *service.ScheduleService
	Logger      *zap.Logger
}

type Server struct {
	opts *Options
	app  *echo.Echo
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(opts *Options) *Server {
	s := &Server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Validator = &requestValidator{validate: validator.New()}
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Logger)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.Recover())
	s.app.Use(middleware.RequestID())

	s.app.GET("/", health)

	v1 := s.app.Group("/v1", authMiddleware(s.opts.Auth))

	staff := requireRoles(model.RoleAdmin, model.RoleSales)
	adminOnly := requireRoles(model.RoleAdmin)

	// scheduling
	v1.GET("/slots", s.listSlots)
	v1.POST("/schedules", s.createSchedule, staff)
	v1.POST("/schedules/check", s.checkConflict, staff)
	v1.PATCH("/schedules/:id/status", s.changeScheduleStatus, staff)
	v1.GET("/trainers/:id/week", s.trainerWeek)
	v1.GET("/trainers/:id/week.png", s.trainerWeekImage)
	v1.GET("/me/schedules", s.mySchedules)

	// courses
	v1.GET("/courses", s.listCourses)
	v1.POST("/courses", s.createCourse, staff)
	v1.PUT("/courses/:id", s.updateCourse, staff)

	// enrollments
	v1.POST("/enrollments", s.createEnrollment, staff)
	v1.PATCH("/enrollments/:id/status", s.changeEnrollmentStatus, staff)
	v1.GET("/courses/:id/enrollments", s.courseEnrollments, requireRoles(model.RoleAdmin, model.RoleSales, model.RoleTrainer))
	v1.GET("/me/enrollments", s.myEnrollments, requireRoles(model.RoleStudent))

	// users
	v1.POST("/users", s.createUser, adminOnly)
	v1.GET("/users", s.listUsers, adminOnly)
	v1.PATCH("/users/:id/active", s.setUserActive, adminOnly)
}

func (s *Server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// ServeHTTP lets tests drive the router directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
