package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobber/portal-gateway/internal/api/metrics"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// SessionCookieName is the portal's own session cookie. Its value is a signed
// token carrying only the session id; the session itself lives server-side.
const SessionCookieName = "portal_session"

// ContextKeySession is where the guard stores the restored session for
// downstream handlers.
const ContextKeySession = "session"

// LoginPath is where unauthenticated browser navigations are sent.
const LoginPath = "/login"

// Guard protects routes that require an authenticated session.
//
// The cookie token is parsed and the session restored on every request,
// never cached across navigations. A missing, tampered or unrestorable
// session is treated uniformly as "logged out": browser navigations are
// answered with 303 See Other to the login path (a server redirect replaces
// the would-be history entry, so back-navigation cannot loop into the guarded
// page), API requests with 401. The guard performs no role checks; role
// authorization is a separate per-route concern.
func Guard(secret string, store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return rejectUnauthenticated(c)
			}

			sid, err := ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return rejectUnauthenticated(c)
			}

			session, err := store.Restore(c.Request().Context(), sid)
			if err != nil || session == nil {
				return rejectUnauthenticated(c)
			}

			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

func rejectUnauthenticated(c echo.Context) error {
	metrics.GuardRedirectsTotal.Inc()
	if wantsHTML(c.Request()) {
		return c.Redirect(http.StatusSeeOther, LoginPath)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
}

// wantsHTML distinguishes browser navigations from fetch-style API calls.
func wantsHTML(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") != "" {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
