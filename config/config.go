// Package config loads and validates the server configuration from a YAML
// file with environment-variable overrides. The index parameters configured
// here are fixed for the lifetime of the process.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Index   IndexConfig   `yaml:"index"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	// RateLimit is the sustained requests-per-second budget per process;
	// RateBurst is the burst allowance. Zero disables rate limiting.
	RateLimit float64 `yaml:"rateLimit"`
	RateBurst int     `yaml:"rateBurst"`
}

// IndexConfig holds the FSBI index parameters.
type IndexConfig struct {
	M               uint32  `yaml:"m"`
	KLex            int     `yaml:"kLex"`
	KSem            int     `yaml:"kSem"`
	ProjectionDim   int     `yaml:"projectionDim"`
	ProjectorSeed   uint32  `yaml:"projectorSeed"`
	MaxPhraseLen    int     `yaml:"maxPhraseLen"`
	FlipProbability float64 `yaml:"flipProbability"`
}

// LoggingConfig controls log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Index: IndexConfig{
			M:               2048,
			KLex:            2,
			KSem:            2,
			ProjectionDim:   64,
			ProjectorSeed:   42,
			MaxPhraseLen:    3,
			FlipProbability: 0.01,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and parses the YAML file at path, applies environment-variable
// overrides, and validates the result. An empty path yields the defaults
// (plus overrides).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FSBI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FSBI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FSBI_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Index.M == 0 {
		return fmt.Errorf("index m must be positive")
	}
	if c.Index.KLex < 0 || c.Index.KSem < 0 || c.Index.KLex+c.Index.KSem == 0 {
		return fmt.Errorf("invalid hash counts: k_lex=%d k_sem=%d", c.Index.KLex, c.Index.KSem)
	}
	if c.Index.FlipProbability < 0 || c.Index.FlipProbability >= 1 {
		return fmt.Errorf("flip probability must be in [0, 1): %v", c.Index.FlipProbability)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	return nil
}
