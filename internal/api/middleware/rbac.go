package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

// RequireRole enforces role-based access on guarded routes. The session's
// role must be one of allowedRoles; unknown or missing roles are never
// allowed (least privilege).
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(ContextKeySession).(*domain.Session)
			if session == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[session.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
