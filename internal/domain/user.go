package domain

import "time"

// Role determines which operations a user is authorized to perform.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDistributor Role = "distributor"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDistributor:
		return true
	}
	return false
}

// User is the domain model for administrators and field distributors.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	Location     *string
	CreatedAt    time.Time
}
