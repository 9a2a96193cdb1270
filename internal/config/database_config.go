package config

import (
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	defaultPoolSize  = 10
	dbDSNEnvVar      = "DB_DSN"
	dbPoolSizeEnvVar = "DB_POOL_SIZE"
)

type Database struct{}

var _ DatabaseConfig = Database{}

// GetDSN returns DB_DSN when set, otherwise builds one from the DB_* variables.
// Either way the DSN parses times as UTC so DATETIME columns scan into time.Time.
// A DB_DSN the driver cannot parse is returned unchanged for Validate to report.
func (Database) GetDSN() string {
	if dsn := GetEnv(dbDSNEnvVar, ""); dsn != "" {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return dsn
		}
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		return cfg.FormatDSN()
	}
	cfg := mysql.NewConfig()
	cfg.User = GetEnv("DB_USER", "root")
	cfg.Passwd = GetEnv("DB_PASSWORD", "")
	cfg.Net = "tcp"
	cfg.Addr = GetEnv("DB_HOST", "127.0.0.1") + ":" + GetEnv("DB_PORT", "3306")
	cfg.DBName = GetEnv("DB_NAME", "club")
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

func (Database) GetPoolSize() int {
	if n := GetEnvInt(dbPoolSizeEnvVar, defaultPoolSize); n > 0 {
		return n
	}
	return defaultPoolSize
}
