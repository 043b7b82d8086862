package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tatianab/edge-trail/internal/engine"
)

// Config holds the application configuration.
type Config struct {
	LogLevel    string `envconfig:"TRAIL_LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"TRAIL_LOG_ENCODING" default:"json"`
	LogFile     string `envconfig:"TRAIL_LOG_FILE"`

	// Seed fixes all randomness when non-zero.
	Seed            int64   `envconfig:"TRAIL_SEED" default:"0"`
	EventChance     float64 `envconfig:"TRAIL_EVENT_CHANCE" default:"0.15"`
	InterceptChance float64 `envconfig:"TRAIL_INTERCEPT_CHANCE" default:"0.33"`

	HTTPPort    string        `envconfig:"TRAIL_HTTP_PORT" default:"8080"`
	SessionTTL  time.Duration `envconfig:"TRAIL_SESSION_TTL" default:"30m"`
	CORSOrigins []string      `envconfig:"TRAIL_CORS_ORIGINS" default:"*"`

	Telemetry bool `envconfig:"TRAIL_TELEMETRY" default:"false"`

	// Only the simulator's gemini policy needs these.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"TRAIL_GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.EventChance < 0 || c.EventChance > 1 {
		errs = append(errs, fmt.Errorf("TRAIL_EVENT_CHANCE must be within [0,1], got %v", c.EventChance))
	}
	if c.InterceptChance < 0 || c.InterceptChance > 1 {
		errs = append(errs, fmt.Errorf("TRAIL_INTERCEPT_CHANCE must be within [0,1], got %v", c.InterceptChance))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("TRAIL_HTTP_PORT is empty"))
	}
	if c.SessionTTL < time.Second {
		errs = append(errs, fmt.Errorf("TRAIL_SESSION_TTL must be at least 1s, got %v", c.SessionTTL))
	}
	return errors.Join(errs...)
}

// Rules returns the default game rules with the configured odds.
func (c *Config) Rules() engine.Rules {
	r := engine.DefaultRules()
	r.EventChance = c.EventChance
	r.InterceptChance = c.InterceptChance
	return r
}
