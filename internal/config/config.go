// Package config loads and validates environment variables at startup.
// Fail-fast: if a variable is present but malformed, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the KodJobs backend.
type Config struct {
	Port                   string
	UsersFile              string // path of the JSON user document
	MuseBaseURL            string // empty = production endpoint
	MuseAPIKey             string // empty = unauthenticated requests
	RedisURL               string // empty = caching disabled
	CacheTTLMinutes        int    // lifetime of cached catalog entries
	RefreshIntervalMinutes int    // cache warm-up cadence
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	usersFile := os.Getenv("USERS_FILE")
	if usersFile == "" {
		usersFile = "users.json"
	}

	ttl, err := positiveInt("CACHE_TTL_MINUTES", 10)
	if err != nil {
		return nil, err
	}

	refresh, err := positiveInt("REFRESH_INTERVAL_MINUTES", 15)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                   port,
		UsersFile:              usersFile,
		MuseBaseURL:            os.Getenv("MUSE_BASE_URL"),
		MuseAPIKey:             os.Getenv("MUSE_API_KEY"),
		RedisURL:               os.Getenv("REDIS_URL"),
		CacheTTLMinutes:        ttl,
		RefreshIntervalMinutes: refresh,
	}, nil
}

func positiveInt(name string, fallback int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}
