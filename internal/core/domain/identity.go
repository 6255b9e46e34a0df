package domain

// Identity is the authenticated caller threaded explicitly into every
// service call. The zero value is the anonymous visitor.
type Identity struct {
	Handle string
	Name   string
	Role   Role
}

// Anonymous is the identity of a visitor without a session.
var Anonymous = Identity{}

// IsAuthenticated reports whether the identity is bound to an account.
func (i Identity) IsAuthenticated() bool {
	return i.Handle != "" && i.Role.Valid()
}

// IsStaff reports whether the identity holds the staff role.
func (i Identity) IsStaff() bool {
	return i.IsAuthenticated() && i.Role == RoleStaff
}

// RequireRole is the single authorization predicate used by every service.
// It returns ErrUnauthenticated for anonymous callers and ErrForbidden when
// the caller's role is not in roles. With no roles, any session passes.
func RequireRole(who Identity, roles ...Role) error {
	if !who.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if who.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
