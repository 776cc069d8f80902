package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juraijvu/learnms/internal/model"
)

type createUserRequest struct {
	Name  string     `json:"name" validate:"required"`
	Email string     `json:"email" validate:"required,email"`
	Role  model.Role `json:"role" validate:"required,oneof=admin sales trainer student"`
}

type createUserResponse struct {
	*model.User
	APIToken string `json:"api_token"` // returned once, at creation
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (s *Server) createUser(ctx echo.Context) error {
	var req createUserRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	user, err := s.opts.Users.Create(ctx.Request().Context(), req.Name, req.Email, req.Role)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, createUserResponse{User: user, APIToken: user.APIToken})
}

func (s *Server) listUsers(ctx echo.Context) error {
	role := model.Role(ctx.QueryParam("role"))
	if !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "role query parameter is required")
	}

	users, err := s.opts.Users.ListByRole(ctx.Request().Context(), role)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, users)
}

func (s *Server) setUserActive(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req setActiveRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	if err := s.opts.Users.SetActive(ctx.Request().Context(), id, *req.IsActive); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
