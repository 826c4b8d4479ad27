package models

import "time"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Session is the client-side view of a login: the bearer token, when the
// client stops trusting it, and whom it belongs to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// Expired reports whether now is past the expiry instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
