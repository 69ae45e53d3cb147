package service

import (
	"context"
	"errors"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

// stubBackend is a configurable ports.BackendClient for service tests.
// Unset function fields behave as inert successes.
type stubBackend struct {
	loginFn       func(username, password string) (string, error)
	profileFn     func(cookie, username string) (*domain.Profile, error)
	registerFn    func(reg domain.Registration) error
	listJobsFn    func() ([]domain.Job, error)
	getJobFn      func(id int64) (*domain.Job, error)
	jobsByEmpFn   func(cookie string, employerID int64) ([]domain.Job, error)
	createJobFn   func(cookie string, employerID int64, input domain.NewJobInput) (*domain.Job, error)
	applyFn       func(cookie string, userID, jobID int64) error
	appsByUserFn  func(cookie string, userID int64) ([]domain.Application, error)
	jobsByEmpIDs  []int64
	appsByUserIDs []int64
}

func (b *stubBackend) Login(_ context.Context, username, password string) (string, error) {
	if b.loginFn != nil {
		return b.loginFn(username, password)
	}
	return "JSESSIONID=stub", nil
}

func (b *stubBackend) Logout(_ context.Context, _ string) error { return nil }

func (b *stubBackend) ProfileByUsername(_ context.Context, cookie, username string) (*domain.Profile, error) {
	if b.profileFn != nil {
		return b.profileFn(cookie, username)
	}
	return nil, errors.New("no profile configured")
}

func (b *stubBackend) Register(_ context.Context, reg domain.Registration) error {
	if b.registerFn != nil {
		return b.registerFn(reg)
	}
	return nil
}

func (b *stubBackend) ListJobs(_ context.Context) ([]domain.Job, error) {
	if b.listJobsFn != nil {
		return b.listJobsFn()
	}
	return []domain.Job{}, nil
}

func (b *stubBackend) GetJob(_ context.Context, id int64) (*domain.Job, error) {
	if b.getJobFn != nil {
		return b.getJobFn(id)
	}
	return nil, domain.ErrNotFound
}

func (b *stubBackend) JobsByEmployer(_ context.Context, cookie string, employerID int64) ([]domain.Job, error) {
	b.jobsByEmpIDs = append(b.jobsByEmpIDs, employerID)
	if b.jobsByEmpFn != nil {
		return b.jobsByEmpFn(cookie, employerID)
	}
	return []domain.Job{}, nil
}

func (b *stubBackend) CreateJob(_ context.Context, cookie string, employerID int64, input domain.NewJobInput) (*domain.Job, error) {
	if b.createJobFn != nil {
		return b.createJobFn(cookie, employerID, input)
	}
	return &domain.Job{ID: 1, Title: input.Title, Employer: domain.EmployerRef{ID: employerID}}, nil
}

func (b *stubBackend) Apply(_ context.Context, cookie string, userID, jobID int64) error {
	if b.applyFn != nil {
		return b.applyFn(cookie, userID, jobID)
	}
	return nil
}

func (b *stubBackend) ApplicationsByUser(_ context.Context, cookie string, userID int64) ([]domain.Application, error) {
	b.appsByUserIDs = append(b.appsByUserIDs, userID)
	if b.appsByUserFn != nil {
		return b.appsByUserFn(cookie, userID)
	}
	return []domain.Application{}, nil
}

func (b *stubBackend) Ping(_ context.Context) error { return nil }
