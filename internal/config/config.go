// internal/config/config.go
//
// Server configuration.
// Flags win over environment variables, which win over defaults. main loads
// a `.env` file (godotenv) before calling Load, so `.env` values count as
// environment.
//
// Environment variables:
//   PORT            listen port (default 5175)
//   SESSION_SECRET  HMAC key for the session cookie (default: dev value, warned)
//   SESSION_TTL     idle lifetime of a session, Go duration (default 12h)
//   COOKIE_NAME     session cookie name (default anagram_session)
//   COOKIE_SECURE   "true" to mark the cookie Secure
//   LOG_LEVEL       zerolog level (default info)
//   LOG_FORMAT      "console" for human-readable logs, otherwise JSON

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DevSecret is used when no SESSION_SECRET is configured.
const DevSecret = "dev_secret_change_me"

type Config struct {
	Port          int
	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	CookieSecure  bool
	LogLevel      string
	LogFormat     string
}

// Load parses flags from args and fills the rest from the environment.
func Load(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("anagram-manager", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.SessionSecret, "secret", "", "Session cookie secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "ttl", 0, "Idle session lifetime")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		port, err := strconv.Atoi(getEnv("PORT", "5175"))
		if err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port out of range: %d", cfg.Port)
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = getEnv("SESSION_SECRET", DevSecret)
	}

	if cfg.SessionTTL == 0 {
		ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	}
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")
	cfg.CookieName = getEnv("COOKIE_NAME", "anagram_session")
	cfg.CookieSecure = os.Getenv("COOKIE_SECURE") == "true"

	return cfg, nil
}

// Addr is the listen address for the configured port.
func (c Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
