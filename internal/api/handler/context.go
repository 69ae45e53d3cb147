package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/jobber/portal-gateway/internal/api/middleware"
	"github.com/jobber/portal-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the route guard. Its absence
// on a guarded route means the middleware chain is miswired; fail closed.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(apimiddleware.ContextKeySession).(*domain.Session)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return session, nil
}
