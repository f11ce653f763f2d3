package config

import "time"

// SessionConfig carries the shared secret the session token codec derives
// its encryption key from, and the lifetime applied to both the token's
// expiry claim and the cookie's Max-Age.
type SessionConfig interface {
	GetSessionSecret() string
	GetSessionMaxAge() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionSecret() string {
	return GetEnv("JWT_SECRET", "")
}

func (Session) GetSessionMaxAge() time.Duration {
	return 6 * 24 * time.Hour
}
