package ports

import (
	"context"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

// JobService covers browsing, posting and applying.
type JobService interface {
	// Browse returns the public job board.
	Browse(ctx context.Context) ([]domain.Job, error)

	// Detail returns one listing, or domain.ErrNotFound.
	Detail(ctx context.Context, id int64) (*domain.Job, error)

	// Post creates a listing owned by the session identity. Re-validates the
	// employer role independently of routing; non-employers get
	// domain.ErrForbidden.
	Post(ctx context.Context, session *domain.Session, input domain.NewJobInput) (*domain.Job, error)

	// Apply submits an application for the session identity. Duplicate
	// submissions inside the in-flight window yield domain.ErrDuplicateApply
	// without reaching the backend twice.
	Apply(ctx context.Context, session *domain.Session, jobID int64) error
}

// ApplyGuard bounds duplicate application submissions.
type ApplyGuard interface {
	// Acquire reports whether this user/job pair may proceed. False means an
	// identical submission is in flight or recently succeeded.
	Acquire(ctx context.Context, userID, jobID int64) (bool, error)
	// Release frees the pair after a failed submission so the user can retry.
	Release(ctx context.Context, userID, jobID int64) error
}
