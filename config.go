package snailfish

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables override values read from the config file
const (
	envMaxReduceSteps   = "SNAILFISH_MAX_REDUCE_STEPS"
	envWorkers          = "SNAILFISH_WORKERS"
	envIncludeSelfPairs = "SNAILFISH_INCLUDE_SELF_PAIRS"
	envLogLevel         = "SNAILFISH_LOG_LEVEL"
)

type Config struct {
	// Ceiling on rewrites in one reduction
	MaxReduceSteps int `yaml:"max_reduce_steps" json:"max_reduce_steps"`

	// Goroutines used by the max-pair search
	Workers int `yaml:"workers" json:"workers"`

	// Also pair each number with itself in the max-pair search
	IncludeSelfPairs bool `yaml:"include_self_pairs" json:"include_self_pairs"`

	LogLevel string `yaml:"log_level" json:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		MaxReduceSteps:   DefaultMaxReduceSteps,
		Workers:          runtime.NumCPU(),
		IncludeSelfPairs: false,
		LogLevel:         "info",
	}
}

// LoadConfig starts from the defaults, overlays the file at path if it
// exists, then the environment, and validates the result.  An empty path
// skips the file.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := loadConfigFromEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadConfigFromEnv(config *Config) error {
	if v := os.Getenv(envMaxReduceSteps); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxReduceSteps, err)
		}
		config.MaxReduceSteps = i
	}

	if v := os.Getenv(envWorkers); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envWorkers, err)
		}
		config.Workers = i
	}

	if v := os.Getenv(envIncludeSelfPairs); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envIncludeSelfPairs, err)
		}
		config.IncludeSelfPairs = b
	}

	if v := os.Getenv(envLogLevel); v != "" {
		config.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.MaxReduceSteps <= 0 {
		return fmt.Errorf("max_reduce_steps must be positive, got %d", c.MaxReduceSteps)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel; empty means info
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
