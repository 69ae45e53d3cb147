package ports

import (
	"context"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

// BackendClient is the gateway's port onto the remote jobber REST API.
//
// The backend authenticates with a server-side session cookie established by
// a form-encoded POST /login; every authenticated call replays that cookie.
// Implementations translate transport and status failures into the domain
// error taxonomy.
type BackendClient interface {
	// Login submits credentials form-url-encoded and returns the backend
	// session cookie on success. Rejected credentials yield
	// domain.ErrInvalidCredentials; transport failures yield
	// domain.ErrBackendUnreachable.
	Login(ctx context.Context, username, password string) (backendCookie string, err error)

	// Logout terminates the backend session. Best-effort by contract: the
	// caller clears local state regardless of the outcome.
	Logout(ctx context.Context, backendCookie string) error

	// ProfileByUsername fetches the extended user record, role included.
	ProfileByUsername(ctx context.Context, backendCookie, username string) (*domain.Profile, error)

	// Register creates a new account. Applicant registrations omit the role
	// field; employer registrations send a role reference resolved by name.
	Register(ctx context.Context, reg domain.Registration) error

	// ListJobs returns the public job board. Non-list payloads coerce to an
	// empty slice.
	ListJobs(ctx context.Context) ([]domain.Job, error)

	// GetJob returns one listing, or domain.ErrNotFound.
	GetJob(ctx context.Context, id int64) (*domain.Job, error)

	// JobsByEmployer returns the listings owned by one employer identity.
	// Non-list payloads coerce to an empty slice.
	JobsByEmployer(ctx context.Context, backendCookie string, employerID int64) ([]domain.Job, error)

	// CreateJob posts a new listing owned by employerID.
	CreateJob(ctx context.Context, backendCookie string, employerID int64, input domain.NewJobInput) (*domain.Job, error)

	// Apply submits {userId, jobId} to the applications endpoint.
	Apply(ctx context.Context, backendCookie string, userID, jobID int64) error

	// ApplicationsByUser returns an applicant's history. Non-list payloads
	// coerce to an empty slice.
	ApplicationsByUser(ctx context.Context, backendCookie string, userID int64) ([]domain.Application, error)

	// Ping probes backend reachability for the readiness endpoint.
	Ping(ctx context.Context) error
}
