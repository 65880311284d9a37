// Package config loads and validates wodbot configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/wodbot/wodbot/internal/classify"
	"github.com/wodbot/wodbot/internal/extract"
	"github.com/wodbot/wodbot/internal/fetch"
)

// Config captures every configuration knob, loaded from a file and/or
// WODBOT_-prefixed environment variables.
type Config struct {
	Source   SourceConfig     `mapstructure:"source"`
	HTTP     HTTPConfig       `mapstructure:"http"`
	Headless HeadlessConfig   `mapstructure:"headless"`
	Server   ServerConfig     `mapstructure:"server"`
	Logging  LoggingConfig    `mapstructure:"logging"`
	Keywords extract.Keywords `mapstructure:"keywords"`
	RestDay  classify.Phrases `mapstructure:"rest_day"`
	Fallback FallbackConfig   `mapstructure:"fallback"`
}

// SourceConfig identifies the workout page.
type SourceConfig struct {
	URL string `mapstructure:"url"`
}

// HTTPConfig configures fetch retry behavior.
type HTTPConfig struct {
	UserAgent      string   `mapstructure:"user_agent"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	MaxRetries     int      `mapstructure:"max_retries"`
	BaseDelayMs    int      `mapstructure:"base_delay_ms"`
	MinBodyBytes   int      `mapstructure:"min_body_bytes"`
	BlockMarkers   []string `mapstructure:"block_markers"`
}

// HeadlessConfig configures the optional render escalation.
type HeadlessConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	NavTimeoutSeconds int  `mapstructure:"nav_timeout_seconds"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// FallbackConfig holds the offline workout used when the fetch fails
// outright; callers substitute it so the day still has a prescription.
type FallbackConfig struct {
	WorkoutText string `mapstructure:"workout_text"`
}

// Load builds a Config from disk/environment. An empty path loads
// defaults and environment overrides only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WODBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.url", "https://www.crossfit.com/wod")
	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.base_delay_ms", 500)
	v.SetDefault("http.min_body_bytes", 1000)
	v.SetDefault("http.block_markers", fetch.DefaultBlockMarkers())
	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.nav_timeout_seconds", 25)
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
	v.SetDefault("fallback.workout_text",
		"Unable to fetch today's WOD. Try this fallback: 5 rounds of 400m run, 20 air squats, 10 push-ups.")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source.url must be set")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent must be set")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.MaxRetries <= 0 {
		return fmt.Errorf("http.max_retries must be > 0")
	}
	if c.HTTP.BaseDelayMs < 0 {
		return fmt.Errorf("http.base_delay_ms must be >= 0")
	}
	if c.HTTP.MinBodyBytes < 0 {
		return fmt.Errorf("http.min_body_bytes must be >= 0")
	}
	if c.Headless.Enabled && c.Headless.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("headless.nav_timeout_seconds must be > 0 when headless is enabled")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	return nil
}

// Timeout returns the per-attempt fetch timeout.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BaseDelay returns the linear backoff unit.
func (c HTTPConfig) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMs) * time.Millisecond
}

// NavTimeout returns the headless navigation timeout.
func (c HeadlessConfig) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSeconds) * time.Second
}
