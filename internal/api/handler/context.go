package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saasdash/dashboard-api/internal/api/middleware"
	"github.com/saasdash/dashboard-api/internal/core/domain"
)

// currentUser extracts the account injected by the Authenticate middleware.
// Its presence proves the guard ran; a guarded route reaching here without it
// is a wiring error answered with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
	}
	return user, nil
}
