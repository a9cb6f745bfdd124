// Package config loads talentgen configuration from defaults, an optional
// YAML file and TALENTGEN_* environment variables, in that order of priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/sbenjam1n/talentgen/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TALENTGEN_"

// PathEnvVar overrides the config file location.
const PathEnvVar = "TALENTGEN_CONFIG"

// DefaultPaths are searched when no config file is given explicitly.
var DefaultPaths = []string{"talentgen.yaml", "talentgen.yml"}

// Config holds all configuration for the talentgen CLI.
type Config struct {
	Generation GenerationConfig `koanf:"generation"`
	Database   DatabaseConfig   `koanf:"database"`
	Redis      RedisConfig      `koanf:"redis"`
	Logging    LoggingConfig    `koanf:"logging"`
	Metrics    MetricsConfig    `koanf:"metrics"`
}

// GenerationConfig are the default run parameters; flags override them.
type GenerationConfig struct {
	Total     int    `koanf:"total" validate:"gt=0"`
	BatchSize int    `koanf:"batch_size" validate:"gt=0"`
	Seed      int64  `koanf:"seed"`
	Workers   int    `koanf:"workers" validate:"gte=1"`
	Output    string `koanf:"output" validate:"required"`
}

type DatabaseConfig struct {
	URL           string `koanf:"url"`
	MigrationsDir string `koanf:"migrations_dir"`
}

type RedisConfig struct {
	URL string `koanf:"url"`

	// ClaimIdle is how long a batch job may stay unacknowledged before
	// another worker takes it over.
	ClaimIdle time.Duration `koanf:"claim_idle" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
// An empty Textfile disables it.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{Level: c.Logging.Level, Format: c.Logging.Format, Caller: c.Logging.Caller}
}

func defaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Total:     1_000_000,
			BatchSize: 10_000,
			Seed:      42,
			Workers:   1,
			Output:    "data/sports_talent_dataset.csv",
		},
		Database: DatabaseConfig{
			URL:           "postgres://localhost:5432/talentgen?sslmode=disable",
			MigrationsDir: "migrations",
		},
		Redis: RedisConfig{
			URL:       "redis://localhost:6379/0",
			ClaimIdle: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// envMappings maps lower-cased variable names, without EnvPrefix, to koanf paths.
var envMappings = map[string]string{
	"total":            "generation.total",
	"batch_size":       "generation.batch_size",
	"seed":             "generation.seed",
	"workers":          "generation.workers",
	"output":           "generation.output",
	"database_url":     "database.url",
	"migrations_dir":   "database.migrations_dir",
	"redis_url":        "redis.url",
	"redis_claim_idle": "redis.claim_idle",
	"log_level":        "logging.level",
	"log_format":       "logging.format",
	"log_caller":       "logging.caller",
	"metrics_textfile": "metrics.textfile",
}

// envKey maps TALENTGEN_BATCH_SIZE to generation.batch_size. Unknown
// variables map to "" and are ignored.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}

// Load builds the configuration. path may be empty, in which case
// TALENTGEN_CONFIG and then DefaultPaths are consulted.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
