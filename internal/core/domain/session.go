package domain

import "time"

// DefaultSessionTTL is the validity window of a client-held credential.
const DefaultSessionTTL = 24 * time.Hour

// Session is the client's record of the authenticated identity and its credential.
// The token is opaque to the client; an empty token means the server did not hand one out.
type Session struct {
	User     User      `json:"user"`
	Token    string    `json:"token,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// Age returns how long ago the credential was issued.
func (s Session) Age(now time.Time) time.Duration {
	return now.Sub(s.IssuedAt)
}

// Expired reports whether the credential has outlived ttl at instant now.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return s.Age(now) >= ttl
}

// StoredCredential is what a CredentialStore persists between process runs.
type StoredCredential struct {
	Token    string    `json:"token"`
	UserID   string    `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// Clone returns an independent copy of s.
func (s Session) Clone() *Session {
	return &s
}
