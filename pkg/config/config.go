// Package config loads pokedex settings. Sources, lowest priority first:
//
//  1. defaults in code
//  2. a YAML file (--config, or ./pokedex.yaml when present)
//  3. a .env file in the working directory
//  4. POKEDEX_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	DefaultFile      = "pokedex.yaml"
	DefaultBatchSize = 50
	// DefaultMaxPokemon bounds the catalog index fetched by the aggregator.
	DefaultMaxPokemon = 1000
)

type Config struct {
	BaseURL     string        `yaml:"base_url" validate:"required,url"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent   string        `yaml:"user_agent"`
	BatchSize   int           `yaml:"batch_size" validate:"gte=1,lte=500"`
	MaxPokemon  int           `yaml:"max_pokemon" validate:"gte=1"`
	Concurrency int           `yaml:"concurrency" validate:"gte=1"`

	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFile     string `yaml:"log_file"`
	Development bool   `yaml:"development"`

	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
}

// envFile is read by Load when it exists. Variables already set in the
// environment win over it.
var envFile = ".env"

func Default() *Config {
	logFile := ""
	if homeDir, err := os.UserHomeDir(); err == nil {
		logFile = filepath.Join(homeDir, ".pokedex", "pokedex.log")
	}

	return &Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     15 * time.Second,
		UserAgent:   "pokedex-cli",
		BatchSize:   DefaultBatchSize,
		MaxPokemon:  DefaultMaxPokemon,
		Concurrency: DefaultBatchSize,
		LogLevel:    "info",
		LogFile:     logFile,
	}
}

// Load builds the configuration. An explicit path must exist; the default
// file is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := cfg.loadEnvironment(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironment() error {
	if val := os.Getenv("POKEDEX_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := os.Getenv("POKEDEX_USER_AGENT"); val != "" {
		c.UserAgent = val
	}
	if val := os.Getenv("POKEDEX_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("POKEDEX_LOG_FILE"); val != "" {
		c.LogFile = val
	}
	if val := os.Getenv("POKEDEX_METRICS_ADDR"); val != "" {
		c.MetricsAddr = val
	}
	if val := os.Getenv("POKEDEX_TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid POKEDEX_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if val := os.Getenv("POKEDEX_DEVELOPMENT"); val != "" {
		c.Development = val == "true" || val == "1" || val == "yes"
	}

	ints := map[string]*int{
		"POKEDEX_BATCH_SIZE":  &c.BatchSize,
		"POKEDEX_MAX_POKEMON": &c.MaxPokemon,
		"POKEDEX_CONCURRENCY": &c.Concurrency,
	}
	for key, target := range ints {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*target = n
	}
	return nil
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
