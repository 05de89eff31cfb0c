package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/saasdash/dashboard-api/internal/core/ports"
)

// Context keys populated by Authenticate.
const (
	ContextKeyUser   = "user"
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// TokenVerifier checks a bearer token and returns its subject identifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate extracts the bearer token, verifies it, loads the user (with
// the password hash stripped) and attaches it to the request context. Any
// failure (missing header, bad token, vanished user, deactivated account)
// yields a 401.
func Authenticate(tokens TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "User account is deactivated")
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyRole, user.Role)

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
