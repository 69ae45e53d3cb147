package ports

import (
	"context"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

// SessionRepository persists the serialized session blob under its session id.
// A nil blob with a nil error means "no record".
type SessionRepository interface {
	Put(ctx context.Context, sid string, blob []byte) error
	Get(ctx context.Context, sid string) ([]byte, error)
	Delete(ctx context.Context, sid string) error
}

// SessionEvent describes a session state change delivered to subscribers.
type SessionEvent struct {
	// Kind is "established", "restored", "cleared", "miss" or "corrupt".
	Kind    string
	Session *domain.Session
}

// SessionStore is the single source of truth for "is a user logged in, and
// as whom". All mutations notify subscribers synchronously through one
// serialized notification point, so dependants observe a consistent state.
type SessionStore interface {
	// Restore loads the session for sid. Absent, empty or unparsable blobs
	// yield (nil, nil): corrupt records are deleted and logged, never
	// surfaced as an error.
	Restore(ctx context.Context, sid string) (*domain.Session, error)

	// Establish persists the session and returns its freshly minted id.
	Establish(ctx context.Context, session *domain.Session) (sid string, err error)

	// Clear terminates the backend session best-effort, then removes the
	// local record unconditionally. Idempotent.
	Clear(ctx context.Context, sid string) error

	// Subscribe registers a callback invoked synchronously on every state
	// change. Not safe to call after the store is in use.
	Subscribe(fn func(SessionEvent))
}
