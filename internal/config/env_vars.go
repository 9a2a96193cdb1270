package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelEnvVar = "LOG_LEVEL"
	dotEnvVar      = "DOTENV_FILE"

	EnvDev = "DEV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Club Server")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, EnvDev))
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

// loadDotEnv reads DOTENV_FILE (default .env) when present. Real environment
// variables always win over the file.
func loadDotEnv() {
	_ = godotenv.Load(GetEnv(dotEnvVar, ".env"))
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvInt(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}
