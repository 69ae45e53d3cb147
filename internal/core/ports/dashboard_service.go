package ports

import (
	"context"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

// DashboardView is the role-conditional payload behind the dashboard.
// Exactly one of Jobs or Applications is populated, never both.
type DashboardView struct {
	Profile      *domain.Profile
	Employer     bool
	Jobs         []domain.Job
	Applications []domain.Application
}

// DashboardService resolves the profile for a session and branches on role.
type DashboardService interface {
	// Overview re-fetches the profile, then loads the employer's listings or
	// the applicant's history depending on the resolved role. A failed
	// profile fetch yields domain.ErrProfileUnavailable; the view must fall
	// back to logout-only rather than show stale role data.
	Overview(ctx context.Context, session *domain.Session) (*DashboardView, error)
}
