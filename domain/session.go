package domain

// SessionState enumerates the session lifecycle.
type SessionState int

const (
	// SessionUnknown is the initial state, before the first restore resolves.
	SessionUnknown SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is a point-in-time snapshot of the authenticated identity.
// Invariant: Authenticated implies User is present and Roles reflects the
// last successfully decoded token.
type Session struct {
	User          *UserProfile
	Roles         RoleSet
	Authenticated bool
	Loading       bool
}

// State derives the lifecycle state from the snapshot flags.
func (s Session) State() SessionState {
	if s.Loading {
		return SessionUnknown
	}
	if s.Authenticated {
		return SessionAuthenticated
	}
	return SessionAnonymous
}

// HasRole reports whether the session carries the role. Anonymous and
// unresolved sessions carry no roles.
func (s Session) HasRole(role Role) bool {
	if !s.Authenticated {
		return false
	}
	return s.Roles.Has(role)
}
