package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// SessionService is the single source of truth for the authenticated session.
// All mutations and their subscriber notifications are serialized under one
// mutex so dependants never observe a torn state.
type SessionService struct {
	repo    ports.SessionRepository
	backend ports.BackendClient
	logger  zerolog.Logger

	mu          sync.Mutex
	subscribers []func(ports.SessionEvent)
}

func NewSessionService(repo ports.SessionRepository, backend ports.BackendClient, logger zerolog.Logger) *SessionService {
	return &SessionService{repo: repo, backend: backend, logger: logger}
}

// Subscribe registers a synchronous observer of session state changes.
func (s *SessionService) Subscribe(fn func(ports.SessionEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Restore loads the session persisted under sid. Absent, empty, literal
// "undefined" or unparsable blobs all yield (nil, nil); corrupt records are
// deleted so they are not re-parsed on every request. Restore never reports
// an error to the caller: a broken blob means "logged out", not "crashed".
func (s *SessionService) Restore(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		s.notify(ports.SessionEvent{Kind: "miss"})
		return nil, nil
	}

	blob, err := s.repo.Get(ctx, sid)
	if err != nil {
		s.logger.Error().Err(err).Msg("session read failed, treating as logged out")
		s.notify(ports.SessionEvent{Kind: "miss"})
		return nil, nil
	}

	session, ok := decodeSessionBlob(blob)
	if !ok {
		s.logger.Warn().Str("sid", sid).Msg("corrupt session blob discarded")
		if err := s.repo.Delete(ctx, sid); err != nil {
			s.logger.Error().Err(err).Msg("failed to delete corrupt session blob")
		}
		s.notify(ports.SessionEvent{Kind: "corrupt"})
		return nil, nil
	}
	if session == nil {
		s.notify(ports.SessionEvent{Kind: "miss"})
		return nil, nil
	}

	s.notify(ports.SessionEvent{Kind: "restored", Session: session})
	return session, nil
}

// Establish persists the session and returns its new id.
func (s *SessionService) Establish(ctx context.Context, session *domain.Session) (string, error) {
	blob, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	sid := newSessionID()
	if err := s.repo.Put(ctx, sid, blob); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info().Str("username", session.Username).Str("role", string(session.Role)).Bool("degraded", session.Degraded).Msg("session established")
	s.notify(ports.SessionEvent{Kind: "established", Session: session})
	return sid, nil
}

// Clear terminates the backend session best-effort, then removes the local
// record unconditionally. Clearing an already-cleared session is a no-op.
func (s *SessionService) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}

	blob, err := s.repo.Get(ctx, sid)
	if err != nil {
		s.logger.Error().Err(err).Msg("session read during clear failed, clearing locally anyway")
	}
	session, _ := decodeSessionBlob(blob)

	if session != nil && session.BackendCookie != "" {
		if err := s.backend.Logout(ctx, session.BackendCookie); err != nil {
			// Best-effort: an unreachable backend never blocks local logout.
			s.logger.Warn().Err(err).Msg("backend logout failed")
		}
	}

	if err := s.repo.Delete(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if session != nil {
		s.logger.Info().Str("username", session.Username).Msg("session cleared")
		s.notify(ports.SessionEvent{Kind: "cleared", Session: session})
	}
	return nil
}

// notify delivers an event to every subscriber under the store mutex, the
// single serialization point for session state observation.
func (s *SessionService) notify(event ports.SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fn := range s.subscribers {
		fn(event)
	}
}

// decodeSessionBlob turns a persisted blob into a session. The second return
// is false for corrupt records (unparsable, or parsable but identity-free);
// a nil blob is simply absent: (nil, true).
func decodeSessionBlob(blob []byte) (*domain.Session, bool) {
	if blob == nil {
		return nil, true
	}
	raw := string(blob)
	// Browser-era persisted state: a failed serializer writes the literal
	// string "undefined". Treat it, and empty strings, as corrupt.
	if raw == "" || raw == "undefined" || raw == "null" {
		return nil, false
	}

	var session domain.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		return nil, false
	}
	if session.Username == "" {
		return nil, false
	}
	return &session, true
}

// newSessionID returns a 32-hex-char random session identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session id entropy unavailable: %v", err))
	}
	return fmt.Sprintf("%x", b)
}
