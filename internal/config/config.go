// Package config defines the predictor's settings and how they are layered.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// ModelPath overrides model discovery when set.
	ModelPath string `koanf:"model_path"`

	// ModelURL is where a missing model is downloaded from. Empty disables
	// the download.
	ModelURL string `koanf:"model_url"`

	// UserAgent is sent with every page request.
	UserAgent string `koanf:"user_agent"`

	// Timeout bounds one page request. Zero means no timeout.
	Timeout time.Duration `koanf:"timeout"`

	// Render fetches pages through a headless browser.
	Render        bool          `koanf:"render"`
	RenderTimeout time.Duration `koanf:"render_timeout"`

	// CloudflareBypass wraps the HTTP transport with browser-like TLS settings.
	CloudflareBypass bool `koanf:"cloudflare_bypass"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		UserAgent:     "Mozilla/5.0",
		Timeout:       30 * time.Second,
		RenderTimeout: 30 * time.Second,
		LogLevel:      "info",
	}
}
