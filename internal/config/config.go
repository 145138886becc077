package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	// EnvPrefix is prepended to every environment key, e.g. SALESDASH_PORT.
	EnvPrefix = "SALESDASH"
	// FileEnv names an optional YAML file read before the environment.
	FileEnv = EnvPrefix + "_CONFIG_FILE"
)

type Config struct {
	// HTTP server
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`

	// Input
	DataFile string `yaml:"data_file" envconfig:"DATA_FILE" validate:"required"`
	LogoFile string `yaml:"logo_file" envconfig:"LOGO_FILE"`

	// Logging
	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json"`

	// Snapshot cache
	CacheSize int           `yaml:"cache_size" envconfig:"CACHE_SIZE" validate:"min=1,max=10000"`
	CacheTTL  time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL"`

	// Per-client rate limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" validate:"min=1"`

	// Display
	CurrencySymbol string `yaml:"currency_symbol" envconfig:"CURRENCY_SYMBOL" validate:"required"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Port:            8081,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,

		DataFile: "sales_data.csv",
		LogoFile: "logo.png",

		LogLevel:  "info",
		LogFormat: "text",

		CacheSize: 100,
		CacheTTL:  5 * time.Minute,

		RateLimitRPS:   20,
		RateLimitBurst: 40,

		CurrencySymbol: "₹",
	}
}

// Load builds the configuration from, in increasing precedence: defaults, the
// YAML file named by SALESDASH_CONFIG_FILE, and SALESDASH_* environment
// variables. A .env file in the working directory is loaded into the
// environment first when present. Load does not validate.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if key := f.Tag.Get("envconfig"); key != "" {
			return EnvPrefix + "_" + key
		}
		return f.Name
	})
	return v
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	durations := []struct {
		name string
		v    time.Duration
		max  time.Duration
	}{
		{"READ_TIMEOUT", c.ReadTimeout, 10 * time.Minute},
		{"WRITE_TIMEOUT", c.WriteTimeout, 10 * time.Minute},
		{"IDLE_TIMEOUT", c.IdleTimeout, time.Hour},
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout, 10 * time.Minute},
		{"CACHE_TTL", c.CacheTTL, 24 * time.Hour},
	}
	for _, d := range durations {
		key := EnvPrefix + "_" + d.name
		if d.v < time.Second {
			problems = append(problems, fmt.Sprintf("invalid %s %v: must be at least 1 second", key, d.v))
		} else if d.v > d.max {
			problems = append(problems, fmt.Sprintf("invalid %s %v: must be at most %v", key, d.v, d.max))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("invalid %s %v: must be at least %s", field, fe.Value(), param)
	case "max":
		return fmt.Sprintf("invalid %s %v: must be at most %s", field, fe.Value(), param)
	case "gt":
		return fmt.Sprintf("invalid %s %v: must be greater than %s", field, fe.Value(), param)
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of %s", field, fe.Value(), strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
