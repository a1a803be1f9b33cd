package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment overrides applied on top of the configuration file.
const (
	EnvProjectDir = "WORKSPACEGEN_PROJECT_DIR"
	EnvRecords    = "WORKSPACEGEN_RECORDS"
	EnvLogLevel   = "WORKSPACEGEN_LOG_LEVEL"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first readable .env/.env.local file. Existing process
// environment variables are never overwritten.
func loadEnvFile() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err == nil {
			return
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvProjectDir)); v != "" {
		cfg.Project.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRecords)); v != "" {
		cfg.Project.Records = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Monitoring.Logging.Level = LogLevel(v)
	}
}
