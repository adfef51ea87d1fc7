package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	OMDb     OMDbConfig     `toml:"omdb"`
	Site     SiteConfig     `toml:"site"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// OMDbConfig holds settings for the movie metadata API.
type OMDbConfig struct {
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// SiteConfig holds settings for the static website export.
type SiteConfig struct {
	TemplatePath string `toml:"template_path"` // empty means the embedded default template
	OutputDir    string `toml:"output_dir"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate fills in defaults and rejects unusable values.
func (c *Config) ParseAndValidate() error {
	if c.Database.Path == "" {
		c.Database.Path = "moviehub.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = "http://www.omdbapi.com/"
	}
	if c.OMDb.TimeoutSec == 0 {
		c.OMDb.TimeoutSec = 10
	}
	if c.OMDb.TimeoutSec < 0 {
		return fmt.Errorf("invalid omdb timeout_sec: %d", c.OMDb.TimeoutSec)
	}
	if c.Site.OutputDir == "" {
		c.Site.OutputDir = "."
	}
	return nil
}
