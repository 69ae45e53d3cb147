package domain

// Role classifies what a logged-in identity may do. The set is closed:
// anything the backend reports outside it parses to RoleUnknown, which
// authorizes nothing employer-specific.
type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleEmployer  Role = "EMPLOYER"
	RoleUnknown   Role = ""
)

// ParseRole maps a backend role name onto the closed role set.
// Unrecognised names become RoleUnknown (least privilege).
func ParseRole(name string) Role {
	switch name {
	case string(RoleApplicant):
		return RoleApplicant
	case string(RoleEmployer):
		return RoleEmployer
	default:
		return RoleUnknown
	}
}

// CanPostJobs reports whether this role may create job listings.
func (r Role) CanPostJobs() bool {
	return r == RoleEmployer
}

// Session is the gateway's record of the currently authenticated identity.
// It is created on successful login or on valid restoration from the
// persisted blob, and destroyed on logout or on corrupt persisted data.
type Session struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	// BackendCookie replays the backend's own session cookie (JSESSIONID)
	// on every upstream call made on behalf of this session.
	BackendCookie string `json:"backendCookie,omitempty"`
	// Degraded marks a session established without a resolved profile:
	// username only, role defaulted to applicant.
	Degraded bool `json:"degraded,omitempty"`
}
