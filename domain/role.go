package domain

import "sort"

// Role is a named authority granted by the remote API.
//
// Tokens may carry role strings outside the closed set below; they are kept
// verbatim so the session reflects the claim exactly. ParseRole is for
// construction sites inside this program, where a typo should fail fast.
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleManager Role = "ROLE_MANAGER"
	RoleUser    Role = "ROLE_USER"
)

// ParseRole validates a role string against the known set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(s), nil
	}
	return "", NewError(ErrCodeInvalid, "unknown role")
}

// RoleSet is the set of roles attached to a session or token claim.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the provided roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// RoleSetFromStrings builds a set from raw claim strings.
func RoleSetFromStrings(roles []string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		if r == "" {
			continue
		}
		set[Role(r)] = struct{}{}
	}
	return set
}

// Has reports whether the role is present. Nil sets contain nothing.
func (s RoleSet) Has(role Role) bool {
	if s == nil {
		return false
	}
	_, ok := s[role]
	return ok
}

// Equal reports whether both sets contain exactly the same roles.
func (s RoleSet) Equal(other RoleSet) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if !other.Has(r) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s RoleSet) Clone() RoleSet {
	if s == nil {
		return nil
	}
	out := make(RoleSet, len(s))
	for r := range s {
		out[r] = struct{}{}
	}
	return out
}

// Strings returns the roles in sorted order, mainly for logging.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}
