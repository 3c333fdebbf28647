package config

import "time"

type SecurityConfig interface {
	GetSessionSigningKey() []byte
	GetMaxSessionAge() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSigningKey returns the HMAC key for the session cookie JWT.
// The default exists so a fresh checkout runs; deployments set SESSION_KEY.
func (Security) GetSessionSigningKey() []byte {
	return []byte(GetEnv("SESSION_KEY", "dev-only-session-signing-key"))
}

func (Security) GetMaxSessionAge() time.Duration {
	return 12 * time.Hour
}
