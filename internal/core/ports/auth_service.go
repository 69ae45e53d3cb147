package ports

import (
	"context"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

// AuthService translates submitted credentials into an established session.
type AuthService interface {
	// Login authenticates against the backend and establishes a session.
	// When the post-login profile fetch fails, a degraded session (username
	// only, applicant role) is still established. Deliberate policy, not a
	// failure path.
	Login(ctx context.Context, username, password string) (sid string, session *domain.Session, err error)

	// Logout delegates to the session store's Clear.
	Logout(ctx context.Context, sid string) error

	// Register creates a backend account. No session is established.
	Register(ctx context.Context, reg domain.Registration) error
}
