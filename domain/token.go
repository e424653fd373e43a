package domain

import "time"

// Claims is the decoded content of a bearer credential.
type Claims struct {
	Subject   string
	Roles     RoleSet
	ExpiresAt time.Time
}

// Expired reports whether the credential is no longer valid at the given
// reference time. A claim is valid only while ExpiresAt is strictly in the
// future.
func (c Claims) Expired(reference time.Time) bool {
	if reference.IsZero() {
		reference = time.Now()
	}
	return !c.ExpiresAt.After(reference)
}
