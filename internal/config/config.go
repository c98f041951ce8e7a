// Package config loads battle settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/battlecore/internal/world"
)

// DefaultPath is where the command looks for a config file.
const DefaultPath = "battlecore.yaml"

// Config holds battle configuration options.
type Config struct {
	// Seed for the demo skirmish's random choices. 0 means a random seed.
	Seed int64 `yaml:"seed" env:"BATTLECORE_SEED"`

	// Field size. Each side owns half of the columns.
	Columns int `yaml:"columns" env:"BATTLECORE_COLUMNS"`
	Rows    int `yaml:"rows" env:"BATTLECORE_ROWS"`

	// Stamina restored by the Rest action.
	RestStamina int `yaml:"rest_stamina" env:"BATTLECORE_REST_STAMINA"`

	// Turn cap for the demo command.
	MaxTurns int `yaml:"max_turns" env:"BATTLECORE_MAX_TURNS"`

	LogLevel  string `yaml:"log_level" env:"BATTLECORE_LOG_LEVEL"`
	Telemetry bool   `yaml:"telemetry" env:"BATTLECORE_TELEMETRY"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		Columns:     world.DefaultColumns,
		Rows:        world.DefaultRows,
		RestStamina: 4,
		MaxTurns:    20,
		LogLevel:    "info",
	}
}

// Load reads config from a YAML file, then applies BATTLECORE_* environment
// overrides. If the file doesn't exist, defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a playable battle.
func (c Config) Validate() error {
	var errs []error
	if c.Columns < 2 || c.Columns%2 != 0 {
		errs = append(errs, fmt.Errorf("columns must be an even number >= 2, got %d", c.Columns))
	}
	if c.Rows < 1 {
		errs = append(errs, fmt.Errorf("rows must be >= 1, got %d", c.Rows))
	}
	if c.RestStamina < 0 {
		errs = append(errs, fmt.Errorf("rest_stamina must be >= 0, got %d", c.RestStamina))
	}
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("max_turns must be >= 1, got %d", c.MaxTurns))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level returns the zerolog level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
