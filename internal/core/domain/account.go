package domain

import "time"

// Role is the closed set of roles an account can hold.
type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleStaff
}

// Account models a registered user of the site.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Handle       string    `json:"handle"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the session identity bound to this account.
func (a *Account) Identity() Identity {
	return Identity{Handle: a.Handle, Name: a.Name, Role: a.Role}
}
