package guard

import (
	"strings"

	"github.com/staffdesk/console/domain"
)

// Decision is the outcome of a navigation check.
type Decision int

const (
	// Defer means the session is still resolving; navigation must wait for
	// the restore to finish instead of flash-redirecting to login.
	Defer Decision = iota
	Allow
	RedirectLogin
	RedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	default:
		return "defer"
	}
}

// Paths of the auth screens; authenticated users are sent away from them.
var authPaths = map[string]struct{}{
	"/login":    {},
	"/register": {},
}

// Prefixes that require an authenticated session.
var protectedPrefixes = []string{
	"/dashboard",
	"/employees",
	"/departments",
}

// Evaluate decides whether navigation to path is admitted for the given
// session snapshot. Unknown paths are allowed through; the not-found screen
// is public.
func Evaluate(session domain.Session, path string) Decision {
	if session.State() == domain.SessionUnknown {
		return Defer
	}

	if _, ok := authPaths[normalize(path)]; ok {
		if session.Authenticated {
			return RedirectDashboard
		}
		return Allow
	}

	if requiresAuth(path) {
		if session.Authenticated {
			return Allow
		}
		return RedirectLogin
	}

	return Allow
}

func requiresAuth(path string) bool {
	p := normalize(path)
	if p == "/" {
		return true
	}
	for _, prefix := range protectedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
