package domain

import "time"

// UserProfile represents the identity record served by GET /auth/me.
// It is fetched fresh whenever a credential is confirmed valid and never
// cached beyond the session's lifetime.
type UserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request payload. Registering does not log
// the new account in.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
