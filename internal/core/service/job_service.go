package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// JobService covers browsing the board, posting listings and applying.
type JobService struct {
	backend ports.BackendClient
	guard   ports.ApplyGuard
	logger  zerolog.Logger
}

func NewJobService(backend ports.BackendClient, guard ports.ApplyGuard, logger zerolog.Logger) *JobService {
	return &JobService{backend: backend, guard: guard, logger: logger}
}

// Browse returns the public job board.
func (s *JobService) Browse(ctx context.Context) ([]domain.Job, error) {
	return s.backend.ListJobs(ctx)
}

// Detail returns one listing by id.
func (s *JobService) Detail(ctx context.Context, id int64) (*domain.Job, error) {
	return s.backend.GetJob(ctx, id)
}

// Post creates a listing owned by the session identity.
//
// The role is re-validated here regardless of what routing allowed: hiding
// the posting link and gating the route are not authorization.
func (s *JobService) Post(ctx context.Context, session *domain.Session, input domain.NewJobInput) (*domain.Job, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	if !session.Role.CanPostJobs() {
		return nil, domain.ErrForbidden
	}
	if session.UserID == 0 {
		// Degraded sessions carry no identity id to own the listing.
		return nil, fmt.Errorf("post job: identity unresolved: %w", domain.ErrForbidden)
	}

	job, err := s.backend.CreateJob(ctx, session.BackendCookie, session.UserID, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("employer_id", session.UserID).Str("title", input.Title).Msg("job posted")
	return job, nil
}

// Apply submits an application for the session identity. The guard bounds
// duplicate submissions to at most one in flight per user/job pair.
func (s *JobService) Apply(ctx context.Context, session *domain.Session, jobID int64) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if session.UserID == 0 {
		return fmt.Errorf("apply: identity unresolved: %w", domain.ErrForbidden)
	}

	ok, err := s.guard.Acquire(ctx, session.UserID, jobID)
	if err != nil {
		// A broken guard must not block applying; log and proceed.
		s.logger.Error().Err(err).Msg("apply guard unavailable")
	} else if !ok {
		return domain.ErrDuplicateApply
	}

	if err := s.backend.Apply(ctx, session.BackendCookie, session.UserID, jobID); err != nil {
		if relErr := s.guard.Release(ctx, session.UserID, jobID); relErr != nil {
			s.logger.Warn().Err(relErr).Msg("apply guard release failed")
		}
		return err
	}

	s.logger.Info().Int64("user_id", session.UserID).Int64("job_id", jobID).Msg("application submitted")
	return nil
}
