package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	DatabaseConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type SecurityConfig interface {
	GetJWTSecret() string
	GetJWTIssuer() string
	GetTokenTTL() time.Duration
	GetSuperadminEmail() string
	GetSuperadminPassword() string
	GetAdminDefaultPassword() string
	GetRedisURL() string
}

type DatabaseConfig interface {
	GetDSN() string
	GetPoolSize() int
}

type StorageConfig interface {
	GetUploadDir() string
	GetUploadMaxBytes() int64
	GetS3Bucket() string
	GetS3Region() string
	GetS3Endpoint() string
	GetS3AccessKey() string
	GetS3SecretKey() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	Database
	Storage
}

// New loads an optional .env file and returns the environment backed configuration.
// The signing secret is resolved once so every caller sees the same key.
func New() Config {
	loadDotEnv()
	return mainConfig{Security: newSecurity()}
}
