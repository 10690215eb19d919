package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleOrdinary Role = "ORDINARY"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOrdinary, RoleAdmin:
		return true
	}
	return false
}

// User is an account that can sign in and submit complaints.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
