package domain

import "errors"

// Sentinel errors forming the gateway's error taxonomy. Infrastructure wraps
// transport detail around these with %w; callers branch with errors.Is.
var (
	// ErrInvalidCredentials: the backend rejected the submitted credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden: a role-gated action attempted without the right role.
	ErrForbidden = errors.New("access forbidden")
	// ErrNotFound: the requested backend resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrBackendUnreachable: the backend could not be reached at all.
	ErrBackendUnreachable = errors.New("backend unreachable")
	// ErrProfileUnavailable: the dashboard could not resolve the profile.
	// Fatal to that view only; login-time profile failures degrade instead.
	ErrProfileUnavailable = errors.New("profile unavailable")
	// ErrDuplicateApply: an identical application is already in flight or
	// was just submitted.
	ErrDuplicateApply = errors.New("application already submitted")
	// ErrNoSession: the request carries no restorable session.
	ErrNoSession = errors.New("no session")
	// ErrUserExists: registration collided with an existing account.
	ErrUserExists = errors.New("user already exists")
)
