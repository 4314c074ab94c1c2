// Package config loads runtime settings from the environment, with
// defaults sized for a small internal deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        int
	Environment string
	CORSOrigin  string

	DatabaseURL    string
	DBMaxOpenConns int
	DBMinIdleConns int
	DBIdleTimeout  time.Duration
	DBMaxLifetime  time.Duration

	// RequestTimeout bounds a whole request, including the wait for a
	// pooled connection. A request that cannot get one in time fails
	// instead of hanging.
	RequestTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:        envInt("PORT", 8080),
		Environment: envString("APP_ENV", "development"),
		CORSOrigin:  envString("CORS_ORIGIN", "*"),

		DatabaseURL:    databaseURL(),
		DBMaxOpenConns: envInt("DB_POOL_MAX", 20),
		DBMinIdleConns: envInt("DB_POOL_MIN", 5),
		DBIdleTimeout:  envDurationMS("DB_IDLE_TIMEOUT_MS", 30*time.Second),
		DBMaxLifetime:  30 * time.Minute,

		RequestTimeout: envDurationMS("REQUEST_TIMEOUT_MS", 15*time.Second),
	}
}

// IsDevelopment controls whether internal error detail is exposed in
// responses.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// databaseURL prefers a full DATABASE_URL and otherwise assembles one
// from the individual POSTGRES_* variables.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	user := envString("POSTGRES_USER", "postgres")
	password := envString("POSTGRES_PASSWORD", "postgres")
	host := envString("POSTGRES_HOST", "localhost")
	port := envString("POSTGRES_PORT", "5432")
	dbName := envString("POSTGRES_DB", "survey")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func envString(key, fallback string) string {
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
		return fallback
	}
	return n
}

func envDurationMS(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
