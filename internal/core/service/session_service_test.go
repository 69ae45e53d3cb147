package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

type stubSessionRepo struct {
	blobs   map[string][]byte
	getErr  error
	deleted []string
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{blobs: make(map[string][]byte)}
}

func (r *stubSessionRepo) Put(_ context.Context, sid string, blob []byte) error {
	r.blobs[sid] = blob
	return nil
}

func (r *stubSessionRepo) Get(_ context.Context, sid string) ([]byte, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	blob, ok := r.blobs[sid]
	if !ok {
		return nil, nil
	}
	return blob, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, sid string) error {
	delete(r.blobs, sid)
	r.deleted = append(r.deleted, sid)
	return nil
}

type stubBackendLogout struct {
	stubBackend
	logoutCalls int
	logoutErr   error
}

func (b *stubBackendLogout) Logout(_ context.Context, _ string) error {
	b.logoutCalls++
	return b.logoutErr
}

func newSessionServiceForTest(repo ports.SessionRepository, backend ports.BackendClient) *SessionService {
	return NewSessionService(repo, backend, zerolog.Nop())
}

func TestSessionService_Restore_Absent(t *testing.T) {
	svc := newSessionServiceForTest(newStubSessionRepo(), &stubBackend{})

	session, err := svc.Restore(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session, got %+v", session)
	}
}

func TestSessionService_Restore_CorruptBlobs(t *testing.T) {
	for _, blob := range []string{"", "undefined", "null", "{not json", `{"role":"EMPLOYER"}`} {
		repo := newStubSessionRepo()
		repo.blobs["sid1"] = []byte(blob)
		svc := newSessionServiceForTest(repo, &stubBackend{})

		session, err := svc.Restore(context.Background(), "sid1")
		if err != nil {
			t.Fatalf("blob %q: Restore returned error: %v", blob, err)
		}
		if session != nil {
			t.Fatalf("blob %q: expected nil session, got %+v", blob, session)
		}
		if _, still := repo.blobs["sid1"]; still {
			t.Fatalf("blob %q: corrupt record not deleted", blob)
		}
	}
}

func TestSessionService_Restore_RepoFailureIsLoggedOut(t *testing.T) {
	repo := newStubSessionRepo()
	repo.getErr = errors.New("redis down")
	svc := newSessionServiceForTest(repo, &stubBackend{})

	session, err := svc.Restore(context.Background(), "sid1")
	if err != nil {
		t.Fatalf("Restore must never surface storage errors, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session, got %+v", session)
	}
}

func TestSessionService_EstablishRestoreRoundtrip(t *testing.T) {
	repo := newStubSessionRepo()
	svc := newSessionServiceForTest(repo, &stubBackend{})

	want := &domain.Session{UserID: 7, Username: "jane", Role: domain.RoleEmployer, BackendCookie: "JSESSIONID=abc"}
	sid, err := svc.Establish(context.Background(), want)
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}
	if sid == "" {
		t.Fatalf("expected non-empty sid")
	}

	got, err := svc.Restore(context.Background(), sid)
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if got == nil || got.UserID != 7 || got.Username != "jane" || got.Role != domain.RoleEmployer {
		t.Fatalf("restored session mismatch: %+v", got)
	}
	if got.BackendCookie != "JSESSIONID=abc" {
		t.Fatalf("backend cookie not preserved: %+v", got)
	}
}

func TestSessionService_Clear_Idempotent(t *testing.T) {
	repo := newStubSessionRepo()
	backend := &stubBackendLogout{}
	svc := newSessionServiceForTest(repo, backend)

	sid, err := svc.Establish(context.Background(), &domain.Session{Username: "jane", Role: domain.RoleApplicant, BackendCookie: "JSESSIONID=x"})
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}

	if err := svc.Clear(context.Background(), sid); err != nil {
		t.Fatalf("first Clear returned error: %v", err)
	}
	if err := svc.Clear(context.Background(), sid); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}

	if session, _ := svc.Restore(context.Background(), sid); session != nil {
		t.Fatalf("expected no session after Clear, got %+v", session)
	}
	if backend.logoutCalls != 1 {
		t.Fatalf("expected one backend logout, got %d", backend.logoutCalls)
	}
}

func TestSessionService_Clear_BackendFailureStillClearsLocally(t *testing.T) {
	repo := newStubSessionRepo()
	backend := &stubBackendLogout{logoutErr: errors.New("backend down")}
	svc := newSessionServiceForTest(repo, backend)

	sid, _ := svc.Establish(context.Background(), &domain.Session{Username: "jane", Role: domain.RoleApplicant, BackendCookie: "JSESSIONID=x"})

	if err := svc.Clear(context.Background(), sid); err != nil {
		t.Fatalf("Clear must not fail on backend logout errors, got %v", err)
	}
	if session, _ := svc.Restore(context.Background(), sid); session != nil {
		t.Fatalf("expected local session cleared despite backend failure")
	}
}

func TestSessionService_SubscribersNotified(t *testing.T) {
	repo := newStubSessionRepo()
	svc := newSessionServiceForTest(repo, &stubBackendLogout{})

	var events []string
	svc.Subscribe(func(e ports.SessionEvent) {
		events = append(events, e.Kind)
	})

	sid, _ := svc.Establish(context.Background(), &domain.Session{Username: "jane", Role: domain.RoleApplicant})
	_, _ = svc.Restore(context.Background(), sid)
	_ = svc.Clear(context.Background(), sid)

	want := []string{"established", "restored", "cleared"}
	if len(events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, events)
		}
	}
}
