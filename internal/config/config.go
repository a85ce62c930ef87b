// Package config loads server settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config contains every runtime setting of the API server.
type Config struct {
	Port         string
	DatabasePath string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// AdminUsername/AdminPassword seed the first dashboard account.
	AdminUsername string
	AdminPassword string

	StatsPollInterval  time.Duration
	CachePurgeInterval time.Duration
}

// Load reads the configuration, falling back to development defaults.
func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "8008"),
		DatabasePath:       getEnv("DATABASE_PATH", "association-site.db"),
		JWTSecret:          getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTIssuer:          getEnv("JWT_ISSUER", "association-site-api"),
		JWTAudience:        getEnv("JWT_AUDIENCE", "association-site-admin"),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		StatsPollInterval:  getEnvDuration("STATS_POLL_INTERVAL", 30*time.Second),
		CachePurgeInterval: getEnvDuration("CACHE_PURGE_INTERVAL", 0),
	}
	if cfg.AdminPassword == "" {
		log.Println("WARN: ADMIN_PASSWORD not set; no admin account will be seeded.")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("WARN: %s=%q is not an integer; using %d", key, v, fallback)
	}
	return fallback
}

// getEnvDuration accepts Go durations ("45s") or a plain number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
