package model

import "strings"

// Role is the authorization tier of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleStaff  Role = "staff"
)

// ParseRole normalises s and rejects anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError("invalid role %q: must be one of admin, member, staff", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleStaff:
		return true
	}
	return false
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
