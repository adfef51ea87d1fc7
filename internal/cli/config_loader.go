package cli

import (
	"fmt"
	"os"

	"moviehub/internal/config"
	"moviehub/internal/logging"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags variables
	cfgFile      string
	logLevel     string
	dbPath       string
	omdbAPIKey   string
	omdbBaseURL  string
	siteTemplate string
	siteOutput   string
)

func registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: MOVIEHUB_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: MOVIEHUB_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database file. (Env: MOVIEHUB_DATABASE_PATH)")

	// Session-specific flags
	cmd.Flags().StringVar(&omdbAPIKey, "omdb-api-key", "", "API key for the OMDb metadata service. (Env: MOVIEHUB_OMDB_API_KEY)")
	cmd.Flags().StringVar(&omdbBaseURL, "omdb-base-url", "", "Base URL for the OMDb metadata service. (Env: MOVIEHUB_OMDB_BASE_URL)")
	cmd.Flags().StringVar(&siteTemplate, "site-template", "", "Path to an HTML template overriding the built-in one. (Env: MOVIEHUB_SITE_TEMPLATE)")
	cmd.Flags().StringVar(&siteOutput, "site-output", "", "Directory the generated website is written to. (Env: MOVIEHUB_SITE_OUTPUT)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("MOVIEHUB_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg)

	// 3. Validate and fill defaults
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)
	goose.SetLogger(logging.Log)

	return nil
}

func applyOverrides(c *config.Config) {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment Variables ---
	if v := getEnv("MOVIEHUB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("MOVIEHUB_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getEnv("MOVIEHUB_OMDB_API_KEY"); v != "" {
		c.OMDb.APIKey = v
	}
	if v := getEnv("MOVIEHUB_OMDB_BASE_URL"); v != "" {
		c.OMDb.BaseURL = v
	}
	if v := getEnv("MOVIEHUB_SITE_TEMPLATE"); v != "" {
		c.Site.TemplatePath = v
	}
	if v := getEnv("MOVIEHUB_SITE_OUTPUT"); v != "" {
		c.Site.OutputDir = v
	}

	// Kept for compatibility with the .env name the OMDb docs use.
	if c.OMDb.APIKey == "" {
		c.OMDb.APIKey = getEnv("OMDB_API_KEY")
	}

	// --- CLI Flags (take precedence) ---
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if omdbAPIKey != "" {
		c.OMDb.APIKey = omdbAPIKey
	}
	if omdbBaseURL != "" {
		c.OMDb.BaseURL = omdbBaseURL
	}
	if siteTemplate != "" {
		c.Site.TemplatePath = siteTemplate
	}
	if siteOutput != "" {
		c.Site.OutputDir = siteOutput
	}
}
