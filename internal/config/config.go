package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/poofware/vacancy-watch/internal/utils"
)

const AppName = "vacancy-watch"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Extraction adapter
	AdapterName         string
	AdapterBaseURL      string
	FetchTimeout        time.Duration
	FetchMaxAttempts    int
	FetchBackoff        time.Duration
	PropertyRunDeadline time.Duration

	// Batch sweep
	SourceLabel      string
	BatchCron        string
	BatchConcurrency int
}

// LoadConfig reads configuration from the environment, with `.env`
// loaded first when present. Required vars are fatal when missing;
// tunables fall back to defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	utils.Logger.Info("Loading config for app: ", AppName)

	cfg := &Config{
		AppName: AppName,
		AppPort: requireEnv("APP_PORT"),
		AppUrl:  envOr("APP_URL", "http://localhost"),
		DBUrl:   requireEnv("DB_URL"),

		AdapterName:         envOr("ADAPTER_NAME", "httpjson"),
		AdapterBaseURL:      requireEnv("ADAPTER_BASE_URL"),
		FetchTimeout:        envDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchMaxAttempts:    envInt("FETCH_MAX_ATTEMPTS", 3),
		FetchBackoff:        envDuration("FETCH_BACKOFF", 2*time.Second),
		PropertyRunDeadline: envDuration("PROPERTY_RUN_DEADLINE", 3*time.Minute),

		SourceLabel:      envOr("RUN_SOURCE_LABEL", ""),
		BatchCron:        envOr("BATCH_CRON", "15 6 * * *"),
		BatchConcurrency: envInt("BATCH_CONCURRENCY", 1),
	}
	return cfg
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.Logger.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.Logger.Fatalf("%s must be a duration like 30s, got %q", key, v)
	}
	return d
}
