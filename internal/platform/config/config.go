// Package config provides configuration loading and validation for the server.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the server.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Log         LogConfig         `koanf:"log"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
	Guise       GuiseConfig       `koanf:"guise"`
	Themes      ClientConfig      `koanf:"themes"`
	Preferences PreferencesConfig `koanf:"preferences"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// GuiseConfig holds the settings of the hosted application and its sessions.
type GuiseConfig struct {
	// Application names the application in logs and telemetry.
	Application string `koanf:"application"`
	// BasePath is the path the application is mounted at, ending in "/".
	BasePath string `koanf:"base_path"`
	// ThemeURI locates the theme applied to every new frame. Empty disables
	// theming.
	ThemeURI string `koanf:"theme_uri"`
	// ResourcesDir is served under {base}/_guise/resources/.
	ResourcesDir string `koanf:"resources_dir"`
	// PollInterval is the browser poll interval while nothing asks for a
	// shorter one.
	PollInterval time.Duration `koanf:"poll_interval"`
	// SessionIdleTimeout ends sessions without requests for this long.
	SessionIdleTimeout time.Duration `koanf:"session_idle_timeout"`
	// RenderWorkers bounds the number of patches rendered in parallel.
	RenderWorkers int `koanf:"render_workers"`
	// Indent formats depicted markup one element per line.
	Indent bool `koanf:"indent"`
}

// ClientConfig holds outbound HTTP client settings, used to fetch remote
// themes.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting settings. A zero rate
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// PreferencesConfig holds the component preference store settings.
type PreferencesConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
