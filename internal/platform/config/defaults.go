package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRenderWorkers  = 4
	defaultRateLimitRPS   = 10
	defaultRateLimitBurst = 20
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"guise.application":          "guise",
		"guise.base_path":            "/",
		"guise.theme_uri":            "",
		"guise.resources_dir":        "web/resources",
		"guise.poll_interval":        "5m",
		"guise.session_idle_timeout": "30m",
		"guise.render_workers":       defaultRenderWorkers,
		"guise.indent":               false,

		"themes.base_url":                        "",
		"themes.timeout":                         "10s",
		"themes.retry.max_attempts":              defaultRetryMaxAttempts,
		"themes.retry.initial_interval":          "100ms",
		"themes.retry.max_interval":              "5s",
		"themes.retry.multiplier":                defaultRetryMultiplier,
		"themes.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"themes.circuit_breaker.timeout":         "30s",
		"themes.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"themes.rate_limit.requests_per_second":  defaultRateLimitRPS,
		"themes.rate_limit.burst_size":           defaultRateLimitBurst,

		"preferences.enabled": false,
		"preferences.path":    "guise-preferences.db",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "guise",
	}
}
