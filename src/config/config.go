package config

import (
	"os"
	"time"
)

const (
	TIME_PARSE_FORMAT = time.RFC3339
	DATE_FORMAT       = "2006-01-02"
	SLOT_TIME_FORMAT  = "15:04"
)

const (
	DEFAULT_API_BASE_URL    = "http://localhost:9090/api"
	DEFAULT_REQUEST_TIMEOUT = 30 * time.Second
	DEFAULT_STALE_TIME      = 5 * time.Minute
	DEFAULT_POLL_INTERVAL   = 60 * time.Second
)

var API_ENV = os.Getenv("API_ENV")

func GetAPIBaseURL() string {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		return DEFAULT_API_BASE_URL
	}
	return base
}

func GetRequestTimeout() time.Duration {
	return getDuration("REQUEST_TIMEOUT", DEFAULT_REQUEST_TIMEOUT)
}

// GetStaleTime returns the window during which a cached read is served
// without a network call.
func GetStaleTime() time.Duration {
	return getDuration("CACHE_STALE_TIME", DEFAULT_STALE_TIME)
}

func GetPollInterval() time.Duration {
	return getDuration("NOTIFY_POLL_INTERVAL", DEFAULT_POLL_INTERVAL)
}

func getDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
