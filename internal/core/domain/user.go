package domain

// RoleRef references a backend role by name. Only the register payload uses
// this nested shape; user records flatten the role to a roleName string.
type RoleRef struct {
	Name string `json:"name"`
}

// Profile is the extended user record fetched from the backend after
// authentication. Never persisted by the gateway; re-fetched on every
// dashboard request.
type Profile struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	RoleName   string `json:"roleName"`
}

// Role returns the profile's role mapped onto the closed role set.
func (p Profile) Role() Role {
	return ParseRole(p.RoleName)
}

// Registration carries the payload for creating a new backend account.
type Registration struct {
	Username   string
	Password   string
	Email      string
	FullName   string
	Phone      string
	Skills     string
	Experience string
	Role       Role
}
