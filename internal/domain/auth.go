package domain

// Identity is the authenticated caller derived from a validated token.
// It is request-scoped and passed explicitly into service calls.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
