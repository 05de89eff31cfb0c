package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
)

// Roles rejects callers whose role is outside the allow-list. It assumes
// Authenticate already ran; calling it on an unauthenticated route is a
// wiring error, caught here as a 401.
func Roles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("User role %s is not authorized to access this route", role))
			}
			return next(c)
		}
	}
}

// TenantAdmin allows the caller to mutate their tenant when they are its
// owner, listed in its admin ids, or a platform admin. Registration assigns
// the plain user role, so tenant ownership itself must grant management
// rights.
func TenantAdmin(tenants ports.TenantRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextKeyUser).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
			}
			if user.Role == domain.RoleAdmin {
				return next(c)
			}
			if user.TenantID == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Not authorized to manage this tenant")
			}

			tenant, err := tenants.FindByID(c.Request().Context(), user.TenantID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Not authorized to manage this tenant")
			}
			if !domain.IsTenantAdmin(tenant, user.ID) {
				return echo.NewHTTPError(http.StatusForbidden, "Not authorized to manage this tenant")
			}
			return next(c)
		}
	}
}

// RequireActiveSubscription loads the caller's tenant and rejects the request
// unless its subscription is active or in trial.
func RequireActiveSubscription(tenants ports.TenantRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextKeyUser).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
			}
			if user.TenantID == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Active subscription required to access this feature")
			}

			tenant, err := tenants.FindByID(c.Request().Context(), user.TenantID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Active subscription required to access this feature")
			}
			if !domain.HasActiveSubscription(tenant) {
				return echo.NewHTTPError(http.StatusForbidden, "Active subscription required to access this feature")
			}
			return next(c)
		}
	}
}
