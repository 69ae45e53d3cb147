// Package jobber implements the HTTP client for the remote jobber REST API.
//
// The backend is session-cookie authenticated: a form-encoded POST /login
// establishes the server-side session and every authenticated call replays
// the captured cookie. All transport and status failures are translated into
// the domain error taxonomy at this boundary.
package jobber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobber/portal-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Observer is notified of every backend call outcome. status is the HTTP
// status code, or "error" on transport failure. The caller wires it to its
// metrics; the client itself has no metrics dependency.
type Observer func(endpoint, status string, seconds float64)

// Client talks to the jobber backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
	observe Observer
}

// NewClient creates a Client for the given base URL. If timeout <= 0 a
// default is applied; a nil observer disables call observation. Redirects are
// not followed: the login contract is detected from the immediate response.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger, observe Observer) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if observe == nil {
		observe = func(string, string, float64) {}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger:  logger,
		observe: observe,
	}
}

// Login submits credentials as application/x-www-form-urlencoded (the
// backend's form-login contract, not JSON) and captures the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req, "login")
	if err != nil {
		return "", err
	}
	defer drain(resp)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to cookie capture
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", domain.ErrInvalidCredentials
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		// Form-login backends redirect on failure (…/login?error).
		if strings.Contains(resp.Header.Get("Location"), "error") {
			return "", domain.ErrInvalidCredentials
		}
	default:
		return "", fmt.Errorf("login: unexpected status %d", resp.StatusCode)
	}

	cookie := joinCookies(resp.Cookies())
	if cookie == "" {
		return "", fmt.Errorf("login: backend returned no session cookie")
	}
	return cookie, nil
}

// Logout terminates the backend session. Callers treat failure as non-fatal.
func (c *Client) Logout(ctx context.Context, backendCookie string) error {
	resp, err := c.request(ctx, http.MethodPost, "/logout", backendCookie, nil, "logout")
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("logout: status %d", resp.StatusCode)
	}
	return nil
}

// ProfileByUsername fetches the extended user record by username.
func (c *Client) ProfileByUsername(ctx context.Context, backendCookie, username string) (*domain.Profile, error) {
	resp, err := c.request(ctx, http.MethodGet, "/users/username/"+url.PathEscape(username), backendCookie, nil, "profile")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkStatus(resp, "profile"); err != nil {
		return nil, err
	}

	var p domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	return &p, nil
}

type registerPayload struct {
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	Email      string          `json:"email"`
	FullName   string          `json:"fullName"`
	Phone      string          `json:"phone,omitempty"`
	Skills     string          `json:"skills,omitempty"`
	Experience string          `json:"experience,omitempty"`
	Role       *domain.RoleRef `json:"role,omitempty"`
}

// Register creates a backend account. Applicants omit the role field (the
// backend defaults it); employers send a role reference resolved by name.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	payload := registerPayload{
		Username:   reg.Username,
		Password:   reg.Password,
		Email:      reg.Email,
		FullName:   reg.FullName,
		Phone:      reg.Phone,
		Skills:     reg.Skills,
		Experience: reg.Experience,
	}
	if reg.Role == domain.RoleEmployer {
		payload.Role = &domain.RoleRef{Name: string(domain.RoleEmployer)}
	}

	resp, err := c.request(ctx, http.MethodPost, "/users/register", "", payload, "register")
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusConflict {
		return domain.ErrUserExists
	}
	return c.checkStatus(resp, "register")
}

// ListJobs returns the public job board.
func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	resp, err := c.request(ctx, http.MethodGet, "/job", "", nil, "jobs_list")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkStatus(resp, "jobs_list"); err != nil {
		return nil, err
	}
	return decodeJobList(resp.Body, c.logger)
}

// GetJob returns a single listing by id.
func (c *Client) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	resp, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/job/%d", id), "", nil, "job_detail")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkStatus(resp, "job_detail"); err != nil {
		return nil, err
	}

	var j domain.Job
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		return nil, fmt.Errorf("job detail: decode: %w", err)
	}
	return &j, nil
}

// JobsByEmployer returns the listings owned by one employer identity.
func (c *Client) JobsByEmployer(ctx context.Context, backendCookie string, employerID int64) ([]domain.Job, error) {
	resp, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/job/user/%d", employerID), backendCookie, nil, "jobs_by_employer")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkStatus(resp, "jobs_by_employer"); err != nil {
		return nil, err
	}
	return decodeJobList(resp.Body, c.logger)
}

type createJobPayload struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Salary      string             `json:"salary"`
	Employer    domain.EmployerRef `json:"employer"`
}

// CreateJob posts a new listing owned by employerID.
func (c *Client) CreateJob(ctx context.Context, backendCookie string, employerID int64, input domain.NewJobInput) (*domain.Job, error) {
	payload := createJobPayload{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Salary:      input.Salary,
		Employer:    domain.EmployerRef{ID: employerID},
	}

	resp, err := c.request(ctx, http.MethodPost, "/job", backendCookie, payload, "job_create")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkStatus(resp, "job_create"); err != nil {
		return nil, err
	}

	var j domain.Job
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		// Some backends answer creation with an empty body; the listing is
		// still created. Return what we sent.
		return &domain.Job{
			Title:       input.Title,
			Description: input.Description,
			Location:    input.Location,
			Salary:      input.Salary,
			Employer:    domain.EmployerRef{ID: employerID},
		}, nil
	}
	return &j, nil
}

type applyPayload struct {
	UserID int64 `json:"userId"`
	JobID  int64 `json:"jobId"`
}

// Apply submits an application for userID to jobID.
func (c *Client) Apply(ctx context.Context, backendCookie string, userID, jobID int64) error {
	resp, err := c.request(ctx, http.MethodPost, "/applications/apply", backendCookie, applyPayload{UserID: userID, JobID: jobID}, "apply")
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusConflict {
		return domain.ErrDuplicateApply
	}
	return c.checkStatus(resp, "apply")
}

// ApplicationsByUser returns an applicant's application history.
func (c *Client) ApplicationsByUser(ctx context.Context, backendCookie string, userID int64) ([]domain.Application, error) {
	resp, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/applications/user/%d", userID), backendCookie, nil, "applications_by_user")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkStatus(resp, "applications_by_user"); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("applications: read: %w", err)
	}
	if !looksLikeList(raw) {
		c.logger.Warn().Str("endpoint", "applications_by_user").Msg("non-list payload coerced to empty list")
		return []domain.Application{}, nil
	}

	var apps []domain.Application
	if err := json.Unmarshal(raw, &apps); err != nil {
		c.logger.Warn().Err(err).Str("endpoint", "applications_by_user").Msg("undecodable list coerced to empty list")
		return []domain.Application{}, nil
	}
	return apps, nil
}

// Ping probes reachability for the readiness endpoint. Any HTTP response,
// error status included, proves the backend is up.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.request(ctx, http.MethodGet, "/job", "", nil, "ping")
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// --- internals ---

// request builds and executes one backend call, replaying the session cookie
// when present and encoding body as JSON when non-nil.
func (c *Client) request(ctx context.Context, method, path, backendCookie string, body any, endpoint string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode: %w", endpoint, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if backendCookie != "" {
		req.Header.Set("Cookie", backendCookie)
	}

	return c.do(req, endpoint)
}

func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(endpoint, "error", time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return nil, fmt.Errorf("%s: %w: %w", endpoint, domain.ErrBackendUnreachable, err)
	}
	c.observe(endpoint, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())
	return resp, nil
}

// checkStatus maps backend statuses onto the domain taxonomy.
func (c *Client) checkStatus(resp *http.Response, endpoint string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%s: status %d", endpoint, resp.StatusCode)
	}
}

// decodeJobList decodes a job list, coercing non-list payloads to empty.
func decodeJobList(body io.Reader, logger zerolog.Logger) ([]domain.Job, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("jobs: read: %w", err)
	}
	if !looksLikeList(raw) {
		logger.Warn().Msg("non-list job payload coerced to empty list")
		return []domain.Job{}, nil
	}

	var jobs []domain.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		logger.Warn().Err(err).Msg("undecodable job list coerced to empty list")
		return []domain.Job{}, nil
	}
	return jobs, nil
}

// looksLikeList reports whether raw is a JSON array.
func looksLikeList(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// joinCookies flattens Set-Cookie pairs into a single Cookie header value.
func joinCookies(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Name == "" {
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}
