package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"titanic/internal/errors"
)

// DefaultBackendOrigin is used when neither an injected nor a persisted origin exists.
const DefaultBackendOrigin = "http://127.0.0.1:5002"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Database  DatabaseConfig
	Insights  InsightsConfig
	Reveal    RevealConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port       string
	GinMode    string
	SessionTTL time.Duration
}

// BackendConfig holds prediction backend settings
type BackendConfig struct {
	// InjectedOrigin takes priority over anything the browser persisted.
	InjectedOrigin string
	// Timeout of zero leaves the transport defaults in charge.
	Timeout time.Duration
}

// DatabaseConfig holds database connection settings. A postgres URL wins over a SQLite path;
// with neither, theme preferences live in the cookie only.
type DatabaseConfig struct {
	URL        string
	SQLitePath string
}

// InsightsConfig points at an optional training dataset (csv or xlsx)
type InsightsConfig struct {
	DatasetPath string
}

// RevealConfig drives the reveal-on-scroll observer
type RevealConfig struct {
	Threshold  float64
	RootMargin string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Enabled reports whether a database was configured
func (d DatabaseConfig) Enabled() bool {
	return d.Driver() != ""
}

// Driver names the database/sql driver for the configured database
func (d DatabaseConfig) Driver() string {
	switch {
	case d.URL != "":
		return "postgres"
	case d.SQLitePath != "":
		return "sqlite"
	}
	return ""
}

// DSN is the data source name passed to the driver
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return d.SQLitePath
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Backend:   *loadBackendConfig(),
		Database:  DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", ""), SQLitePath: getEnvOrDefault("SQLITE_PATH", "")},
		Insights:  InsightsConfig{DatasetPath: getEnvOrDefault("INSIGHTS_DATASET", "")},
		Reveal:    *loadRevealConfig(),
		Profiling: *loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:       getEnvOrDefault("PORT", "8080"),
		GinMode:    getEnvOrDefault("GIN_MODE", "debug"),
		SessionTTL: getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
	}
}

func loadBackendConfig() *BackendConfig {
	return &BackendConfig{
		InjectedOrigin: getEnvOrDefault("BACKEND_URL", ""),
		Timeout:        getEnvDurationOrDefault("PREDICT_TIMEOUT", 0),
	}
}

func loadRevealConfig() *RevealConfig {
	return &RevealConfig{
		Threshold:  getEnvFloatOrDefault("REVEAL_THRESHOLD", 0.1),
		RootMargin: getEnvOrDefault("REVEAL_ROOT_MARGIN", "50px"),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Backend.InjectedOrigin != "" && !validOrigin(config.Backend.InjectedOrigin) {
		return errors.ConfigInvalid("BACKEND_URL must be an absolute http(s) URL")
	}
	if config.Server.SessionTTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.Backend.Timeout < 0 {
		return errors.ConfigInvalid("PREDICT_TIMEOUT cannot be negative")
	}
	if config.Reveal.Threshold < 0 || config.Reveal.Threshold > 1 {
		return errors.ConfigInvalid("REVEAL_THRESHOLD must be within [0,1]")
	}
	return nil
}

// ResolveBackendOrigin picks the origin for one page session: the injected value,
// then the persisted browser value, then DefaultBackendOrigin. Invalid candidates are skipped.
func ResolveBackendOrigin(injected, persisted string) string {
	for _, candidate := range []string{injected, persisted} {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" && validOrigin(candidate) {
			return strings.TrimRight(candidate, "/")
		}
	}
	return DefaultBackendOrigin
}

func validOrigin(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
