package model

const (
	RoleUser   = "user"
	RolePolice = "police"
)

// User represents a registered citizen or police officer.
// Passwords are kept as entered; the portal is a demo and does not hash them.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // "user" or "police"
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// IsValidRole reports whether role is one the portal knows about
func IsValidRole(role string) bool {
	return role == RoleUser || role == RolePolice
}

// RegisterRequest is used for creating a new account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest carries the (username, password, role) triple that must match exactly
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// DefaultUsers are seeded when the users collection is absent.
func DefaultUsers() []User {
	return []User{
		{Username: "police1", Password: "police123", Role: RolePolice, Name: "Officer", Email: "police@cyber.gov"},
		{Username: "user1", Password: "user123", Role: RoleUser, Name: "Demo User", Email: "user1@example.com"},
	}
}
