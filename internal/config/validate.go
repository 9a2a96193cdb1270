package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
)

var v = validator.New()

type snapshot struct {
	Env             string        `validate:"required"`
	Secret          string        `validate:"required,min=32"`
	TokenTTL        time.Duration `validate:"gt=0"`
	SuperadminEmail string        `validate:"required,email"`
	DSN             string        `validate:"required"`
	PoolSize        int           `validate:"min=1,max=200"`
	UploadMaxBytes  int64         `validate:"gt=0"`
}

// Validate fails fast on configuration the server must not start with. Outside
// DEV a missing JWT_SECRET is an error rather than a silent fallback.
func Validate(c Config) error {
	if g, ok := c.(interface{ SecretGenerated() bool }); ok && g.SecretGenerated() && c.GetEnv() != EnvDev {
		return fmt.Errorf("[config Validate] %s must be set when ENV=%s", jwtSecretEnvVar, c.GetEnv())
	}
	if err := checkEnvFormats(); err != nil {
		return err
	}
	if _, err := mysql.ParseDSN(c.GetDSN()); err != nil {
		return fmt.Errorf("[config Validate] %s: %w", dbDSNEnvVar, err)
	}
	s := snapshot{
		Env:             c.GetEnv(),
		Secret:          c.GetJWTSecret(),
		TokenTTL:        c.GetTokenTTL(),
		SuperadminEmail: c.GetSuperadminEmail(),
		DSN:             c.GetDSN(),
		PoolSize:        c.GetPoolSize(),
		UploadMaxBytes:  c.GetUploadMaxBytes(),
	}
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("[config Validate] %w", err)
	}
	return nil
}

// checkEnvFormats reports numeric and duration variables that are set but do
// not parse. The getters fall back to defaults for them, which would hide a typo.
func checkEnvFormats() error {
	var bad []string
	for _, name := range []string{dbPoolSizeEnvVar, uploadMaxBytesEnvVar} {
		if raw := os.Getenv(name); raw != "" {
			if _, err := strconv.Atoi(raw); err != nil {
				bad = append(bad, fmt.Sprintf("%s=%q is not an integer", name, raw))
			}
		}
	}
	if raw := os.Getenv(tokenTTLEnvVar); raw != "" {
		if _, err := time.ParseDuration(raw); err != nil {
			bad = append(bad, fmt.Sprintf("%s=%q is not a duration", tokenTTLEnvVar, raw))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("[config Validate] %s", strings.Join(bad, "; "))
	}
	return nil
}
