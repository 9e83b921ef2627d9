// Package config loads CLI and server configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/varbar-go/pkg/varbar"
	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/settings"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "varbar.yaml"

// Config holds the configuration settings.
type Config struct {
	Viewport models.Viewport   `yaml:"viewport"`
	Locale   string            `yaml:"locale"`
	Input    InputConfig       `yaml:"input"`
	Settings settings.Settings `yaml:"settings"`
	Server   ServerConfig      `yaml:"server"`
}

// InputConfig selects the data inside workbook inputs.
type InputConfig struct {
	Sheet string `yaml:"sheet"`
	Range string `yaml:"range"`
}

// ServerConfig holds HTTP host configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := varbar.DefaultOptions()
	return &Config{
		Viewport: opts.Viewport,
		Locale:   opts.Locale,
		Settings: settings.Default(),
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig loads the configuration from a YAML file. A missing file
// yields the defaults; environment variables override either.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("VARBAR_WIDTH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid VARBAR_WIDTH value: %w", err)
		}
		c.Viewport.Width = f
	}
	if v := os.Getenv("VARBAR_HEIGHT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid VARBAR_HEIGHT value: %w", err)
		}
		c.Viewport.Height = f
	}
	if v := os.Getenv("VARBAR_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("VARBAR_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// Options converts the configuration into rendering options.
func (c *Config) Options(logger *slog.Logger) varbar.Options {
	s := c.Settings
	return varbar.Options{
		Viewport: c.Viewport,
		Settings: &s,
		Locale:   c.Locale,
		Sheet:    c.Input.Sheet,
		Range:    c.Input.Range,
		Logger:   logger,
	}
}
