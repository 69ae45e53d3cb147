package jobber

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zerolog.Nop(), nil)
}

func TestClient_Login_FormEncodedAndCookieCaptured(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("expected form-encoded login, got %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "jane" || r.PostForm.Get("password") != "correct" {
			t.Fatalf("credentials not submitted as form fields: %v", r.PostForm)
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123"})
		w.WriteHeader(http.StatusOK)
	})
	c := newTestClient(t, handler)

	cookie, err := c.Login(context.Background(), "jane", "correct")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if cookie != "JSESSIONID=abc123" {
		t.Fatalf("unexpected cookie: %q", cookie)
	}
}

func TestClient_Login_RejectedCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(t, handler)

	if _, err := c.Login(context.Background(), "jane", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_Login_ErrorRedirectMeansRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/login?error")
		w.WriteHeader(http.StatusFound)
	})
	c := newTestClient(t, handler)

	if _, err := c.Login(context.Background(), "jane", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for error redirect, got %v", err)
	}
}

func TestClient_Login_NoCookieIsFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	c := newTestClient(t, handler)

	if _, err := c.Login(context.Background(), "jane", "correct"); err == nil {
		t.Fatalf("expected error when backend sets no session cookie")
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, time.Second, zerolog.Nop(), nil)

	if _, err := c.Login(context.Background(), "jane", "correct"); !errors.Is(err, domain.ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
	if _, err := c.ListJobs(context.Background()); !errors.Is(err, domain.ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
}

func TestClient_ProfileByUsername_ReplaysCookie(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/username/jane" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Cookie") != "JSESSIONID=abc123" {
			t.Fatalf("session cookie not replayed, got %q", r.Header.Get("Cookie"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "username": "jane", "fullName": "Jane Doe",
			"roleName": "EMPLOYER",
		})
	})
	c := newTestClient(t, handler)

	p, err := c.ProfileByUsername(context.Background(), "JSESSIONID=abc123", "jane")
	if err != nil {
		t.Fatalf("ProfileByUsername returned error: %v", err)
	}
	if p.ID != 7 || p.Username != "jane" || p.Role() != domain.RoleEmployer {
		t.Fatalf("unexpected profile: %+v role=%q", p, p.Role())
	}
}

func TestClient_GetJob_NotFound(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	if _, err := c.GetJob(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_ListJobs_NonListPayloadCoercedToEmpty(t *testing.T) {
	for _, payload := range []string{`{"message":"no jobs"}`, `"oops"`, ``} {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, payload)
		})
		c := newTestClient(t, handler)

		jobs, err := c.ListJobs(context.Background())
		if err != nil {
			t.Fatalf("payload %q: ListJobs returned error: %v", payload, err)
		}
		if jobs == nil || len(jobs) != 0 {
			t.Fatalf("payload %q: expected empty list, got %v", payload, jobs)
		}
	}
}

func TestClient_ListJobs_DecodesList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/job" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":1,"title":"Go Engineer","employer":{"id":7,"username":"jane"}}]`)
	})
	c := newTestClient(t, handler)

	jobs, err := c.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs returned error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Go Engineer" || jobs[0].Employer.ID != 7 {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestClient_JobsByEmployer_Path(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/job/user/7" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[]`)
	})
	c := newTestClient(t, handler)

	jobs, err := c.JobsByEmployer(context.Background(), "JSESSIONID=abc", 7)
	if err != nil {
		t.Fatalf("JobsByEmployer returned error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty list, got %v", jobs)
	}
}

func TestClient_Register_EmployerSendsRoleByName(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/register" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode register payload: %v", err)
		}
		role, ok := body["role"].(map[string]any)
		if !ok || role["name"] != "EMPLOYER" {
			t.Fatalf("employer registration must reference the role by name: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	})
	c := newTestClient(t, handler)

	reg := domain.Registration{Username: "acme", Password: "s3cret", Email: "hr@acme.test", FullName: "Acme HR", Role: domain.RoleEmployer}
	if err := c.Register(context.Background(), reg); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
}

func TestClient_Register_ApplicantOmitsRole(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, present := body["role"]; present {
			t.Fatalf("applicant registration must omit the role field: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	})
	c := newTestClient(t, handler)

	reg := domain.Registration{Username: "bob", Password: "s3cret", Email: "bob@test", FullName: "Bob", Role: domain.RoleApplicant}
	if err := c.Register(context.Background(), reg); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
}

func TestClient_Register_Conflict(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	c := newTestClient(t, handler)

	err := c.Register(context.Background(), domain.Registration{Username: "jane"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestClient_Apply_PayloadAndConflict(t *testing.T) {
	status := http.StatusOK
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/applications/apply" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var body struct {
			UserID int64 `json:"userId"`
			JobID  int64 `json:"jobId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode apply payload: %v", err)
		}
		if body.UserID != 3 || body.JobID != 11 {
			t.Fatalf("unexpected apply payload: %+v", body)
		}
		w.WriteHeader(status)
	})
	c := newTestClient(t, handler)

	if err := c.Apply(context.Background(), "JSESSIONID=abc", 3, 11); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	status = http.StatusConflict
	if err := c.Apply(context.Background(), "JSESSIONID=abc", 3, 11); !errors.Is(err, domain.ErrDuplicateApply) {
		t.Fatalf("expected ErrDuplicateApply, got %v", err)
	}
}

func TestClient_ApplicationsByUser_NonListCoerced(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/applications/user/3" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"message":"none"}`)
	})
	c := newTestClient(t, handler)

	apps, err := c.ApplicationsByUser(context.Background(), "JSESSIONID=abc", 3)
	if err != nil {
		t.Fatalf("ApplicationsByUser returned error: %v", err)
	}
	if apps == nil || len(apps) != 0 {
		t.Fatalf("expected empty list, got %v", apps)
	}
}

func TestClient_CreateJob_EmptyResponseBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	c := newTestClient(t, handler)

	input := domain.NewJobInput{Title: "Go Engineer", Description: "d", Location: "Remote", Salary: "100k"}
	job, err := c.CreateJob(context.Background(), "JSESSIONID=abc", 7, input)
	if err != nil {
		t.Fatalf("CreateJob returned error: %v", err)
	}
	if job.Title != "Go Engineer" || job.Employer.ID != 7 {
		t.Fatalf("unexpected job echo: %+v", job)
	}
}

func TestClient_ObserverReceivesOutcomes(t *testing.T) {
	type call struct {
		endpoint string
		status   string
	}
	var calls []call
	record := func(endpoint, status string, _ float64) {
		calls = append(calls, call{endpoint, status})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second, zerolog.Nop(), record)
	if _, err := c.ListJobs(context.Background()); err != nil {
		t.Fatalf("ListJobs returned error: %v", err)
	}

	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	c = NewClient(down.URL, time.Second, zerolog.Nop(), record)
	_, _ = c.ListJobs(context.Background())

	want := []call{{"jobs_list", "200"}, {"jobs_list", "error"}}
	if len(calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, calls)
		}
	}
}

func TestClient_Ping_AnyResponseIsUp(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, handler)

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping must accept any HTTP response, got %v", err)
	}
}
