package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/juraijvu/learnms/internal/model"
)

const userContextKey = "learnms.user"

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	errForbidden    = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// authMiddleware resolves the Authorization bearer token to a user and
// stashes it on the request context. Unknown or missing tokens end the
// request with 401.
func authMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return errUnauthorized
			}

			user, err := auth.Authenticate(ctx.Request().Context(), token)
			if err != nil {
				return err
			}
			if user == nil {
				return errUnauthorized
			}

			ctx.Set(userContextKey, user)
			return next(ctx)
		}
	}
}

// requireRoles gates a route on the caller holding one of the given roles.
func requireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			user := currentUser(ctx)
			if user == nil {
				return errUnauthorized
			}
			for _, role := range roles {
				if user.Role == role {
					return next(ctx)
				}
			}
			return errForbidden
		}
	}
}

func currentUser(ctx echo.Context) *model.User {
	user, _ := ctx.Get(userContextKey).(*model.User)
	return user
}
