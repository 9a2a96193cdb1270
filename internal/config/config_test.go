package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jrsteele09/go-club-server/internal/config"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	t.Setenv("DOTENV_FILE", "does-not-exist.env")
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestConfig_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"JWT_SECRET": "", "PORT": "", "TOKEN_TTL": "", "DB_POOL_SIZE": "", "DB_DSN": ""})
	c := config.New()

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, 12*time.Hour, c.GetTokenTTL())
	require.Equal(t, 10, c.GetPoolSize())
	require.Len(t, c.GetJWTSecret(), 64)
	require.Contains(t, c.GetDSN(), "tcp(127.0.0.1:3306)/club")
}

func TestConfig_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"PORT":            ":9000",
		"TOKEN_TTL":       "30m",
		"DB_POOL_SIZE":    "4",
		"DB_DSN":          "u:p@tcp(db:3306)/x",
		"ALLOWED_ORIGINS": "https://a.example, https://b.example",
	})
	c := config.New()

	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, 30*time.Minute, c.GetTokenTTL())
	require.Equal(t, 4, c.GetPoolSize())
	dsn, err := mysql.ParseDSN(c.GetDSN())
	require.NoError(t, err)
	require.Equal(t, "db:3306", dsn.Addr)
	require.Equal(t, "x", dsn.DBName)
	require.True(t, dsn.ParseTime)
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example"))
	require.False(t, c.GetAllowedOrigins().IsAllowedOrigin("https://c.example"))
}

func TestValidate(t *testing.T) {
	t.Run("generated secret allowed in DEV", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": "DEV", "JWT_SECRET": ""})
		require.NoError(t, config.Validate(config.New()))
	})

	t.Run("generated secret refused outside DEV", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": "PROD", "JWT_SECRET": ""})
		err := config.Validate(config.New())
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("short secret refused", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": "PROD", "JWT_SECRET": "short"})
		require.Error(t, config.Validate(config.New()))
	})

	t.Run("configured secret accepted", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": "PROD", "JWT_SECRET": strings.Repeat("k", 32)})
		require.NoError(t, config.Validate(config.New()))
	})

	t.Run("invalid superadmin email", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": "DEV", "SUPERADMIN_EMAIL": "not-an-email"})
		require.Error(t, config.Validate(config.New()))
	})
}

func TestGetDSN_ForcesParseTime(t *testing.T) {
	setEnv(t, map[string]string{"DB_DSN": "u:p@tcp(db:3306)/x?parseTime=false&loc=Local"})
	dsn, err := mysql.ParseDSN(config.New().GetDSN())
	require.NoError(t, err)
	require.True(t, dsn.ParseTime)
	require.Equal(t, time.UTC, dsn.Loc)

	setEnv(t, map[string]string{"DB_DSN": ""})
	dsn, err = mysql.ParseDSN(config.New().GetDSN())
	require.NoError(t, err)
	require.True(t, dsn.ParseTime)
}

func TestValidate_MalformedEnv(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"pool size", "DB_POOL_SIZE", "ten"},
		{"upload limit", "UPLOAD_MAX_BYTES", "10MB"},
		{"token ttl", "TOKEN_TTL", "12"},
		{"unparseable dsn", "DB_DSN", "not a dsn"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, map[string]string{"ENV": "DEV", tc.key: tc.value})
			err := config.Validate(config.New())
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}
