package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// DashboardService resolves the profile for a session and branches the view
// on the resolved role.
type DashboardService struct {
	backend ports.BackendClient
	logger  zerolog.Logger
}

func NewDashboardService(backend ports.BackendClient, logger zerolog.Logger) *DashboardService {
	return &DashboardService{backend: backend, logger: logger}
}

// Overview re-fetches the profile and loads the role-specific dataset.
//
// The profile is never served from the session: the session's role tag may be
// degraded or stale, and showing the wrong role's data is worse than showing
// none. A failed profile fetch is therefore fatal to this view
// (domain.ErrProfileUnavailable); the caller falls back to logout-only.
func (s *DashboardService) Overview(ctx context.Context, session *domain.Session) (*ports.DashboardView, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}

	profile, err := s.backend.ProfileByUsername(ctx, session.BackendCookie, session.Username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", session.Username).Msg("dashboard profile fetch failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileUnavailable, err)
	}

	view := &ports.DashboardView{Profile: profile}

	switch profile.Role() {
	case domain.RoleEmployer:
		jobs, err := s.backend.JobsByEmployer(ctx, session.BackendCookie, profile.ID)
		if err != nil {
			return nil, err
		}
		view.Employer = true
		view.Jobs = jobs
	default:
		// Applicant, and any unknown role: least privilege. Application
		// history, never the employer's management view.
		apps, err := s.backend.ApplicationsByUser(ctx, session.BackendCookie, profile.ID)
		if err != nil {
			return nil, err
		}
		view.Applications = apps
	}

	return view, nil
}
