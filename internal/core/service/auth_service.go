package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// AuthService implements login, logout and registration against the backend.
type AuthService struct {
	backend ports.BackendClient
	store   ports.SessionStore
	logger  zerolog.Logger
}

func NewAuthService(backend ports.BackendClient, store ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{backend: backend, store: store, logger: logger}
}

// Login authenticates against the backend and establishes a session.
//
// The secondary profile fetch resolves identity id and role. When it fails
// after credentials were accepted, a degraded session (username only, role
// defaulted to applicant) is established instead of stranding the user
// half-authenticated. Rejected credentials and unreachable backends establish
// nothing.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	backendCookie, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	session := &domain.Session{
		Username:      username,
		Role:          domain.RoleApplicant,
		BackendCookie: backendCookie,
		Degraded:      true,
	}

	profile, err := s.backend.ProfileByUsername(ctx, backendCookie, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("profile fetch failed after login, establishing degraded session")
	} else {
		session.UserID = profile.ID
		session.Username = profile.Username
		session.Role = profile.Role()
		session.Degraded = false
	}

	sid, err := s.store.Establish(ctx, session)
	if err != nil {
		return "", nil, err
	}
	return sid, session, nil
}

// Logout delegates to the session store.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.store.Clear(ctx, sid)
}

// Register creates a backend account. Employer registrations carry a role
// reference resolved by name; applicants rely on the backend default.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	if err := s.backend.Register(ctx, reg); err != nil {
		return err
	}
	s.logger.Info().Str("username", reg.Username).Str("role", string(reg.Role)).Msg("account registered")
	return nil
}
