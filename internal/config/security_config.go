package config

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	jwtSecretEnvVar = "JWT_SECRET"
	tokenTTLEnvVar  = "TOKEN_TTL"

	// MinSecretLength is the shortest JWT_SECRET accepted outside DEV (HS256 key size)
	MinSecretLength = 32
)

type Security struct {
	secret          string
	secretGenerated bool
}

var _ SecurityConfig = Security{}

// newSecurity reads JWT_SECRET. When it is unset a random per-process secret is
// generated; Validate refuses to run with it outside DEV.
func newSecurity() Security {
	if secret := GetEnv(jwtSecretEnvVar, ""); secret != "" {
		return Security{secret: secret}
	}
	b := make([]byte, MinSecretLength)
	_, _ = rand.Read(b)
	return Security{secret: hex.EncodeToString(b), secretGenerated: true}
}

func (s Security) GetJWTSecret() string {
	return s.secret
}

// SecretGenerated reports whether the signing secret was generated at startup
func (s Security) SecretGenerated() bool {
	return s.secretGenerated
}

func (Security) GetJWTIssuer() string {
	return GetEnv("JWT_ISSUER", "club-server")
}

func (Security) GetTokenTTL() time.Duration {
	return GetEnvDuration(tokenTTLEnvVar, 12*time.Hour)
}

func (Security) GetSuperadminEmail() string {
	return GetEnv("SUPERADMIN_EMAIL", "superadmin@club.local")
}

// GetSuperadminPassword returns the configured bootstrap password. Empty means
// a random password is generated and logged once.
func (Security) GetSuperadminPassword() string {
	return GetEnv("SUPERADMIN_PASSWORD", "")
}

// GetAdminDefaultPassword returns the temporary password for provisioned admins.
// Empty means a random password per admin.
func (Security) GetAdminDefaultPassword() string {
	return GetEnv("ADMIN_DEFAULT_PASSWORD", "")
}

func (Security) GetRedisURL() string {
	return GetEnv("REDIS_URL", "")
}
