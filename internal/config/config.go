package config

import (
	"log/slog"
	"strings"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// Config holds the settings read once at cold start.
type Config struct {
	// APIKey is the provider key supplied directly through the environment.
	APIKey string
	// APIKeyParam names an SSM parameter holding the provider key. Used only
	// when APIKey is empty.
	APIKeyParam string
	BaseURL     string
	LogLevel    slog.Level
}

// Load builds a Config from getenv. A missing provider key is not an error
// here: every chat call reports it instead.
func Load(getenv func(string) string) Config {
	return Config{
		APIKey:      strings.TrimSpace(getenv("OPENAI_API_KEY")),
		APIKeyParam: strings.TrimSpace(getenv("OPENAI_API_KEY_PARAM")),
		BaseURL:     envString(getenv, "OPENAI_BASE_URL", DefaultBaseURL),
		LogLevel:    envLevel(getenv, "LOG_LEVEL", slog.LevelInfo),
	}
}

// UsesParamStore reports whether the provider key must be fetched from SSM.
func (c Config) UsesParamStore() bool {
	return c.APIKey == "" && c.APIKeyParam != ""
}

func envString(getenv func(string) string, key, def string) string {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envLevel(getenv func(string) string, key string, def slog.Level) slog.Level {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return def
	}
	return lvl
}
