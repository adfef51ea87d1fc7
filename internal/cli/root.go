package cli

import (
	"fmt"
	"os"
	"time"

	"moviehub/internal/logging"
	"moviehub/internal/omdb"
	"moviehub/internal/repository"
	"moviehub/internal/services/movies"
	"moviehub/internal/site"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
// It runs the interactive movie session.
var RootCmd = &cobra.Command{
	Use:   "moviehub",
	Short: "Personal movie database",
	Long:  `An interactive terminal tool for per-user movie lists with OMDb lookups and static website export.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	registerFlags(RootCmd)
}

// runApp opens the repository, brings the schema up to date and hands control
// to the interactive session loop.
func runApp() error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	var fetcher *omdb.Client
	if cfg.OMDb.APIKey != "" {
		fetcher = omdb.NewClient(cfg.OMDb.BaseURL, cfg.OMDb.APIKey, time.Duration(cfg.OMDb.TimeoutSec)*time.Second)
	} else {
		logging.Log.Info("No OMDb API key configured; movies are added with manually entered fields.")
	}

	sess := newSession(
		repo,
		movies.NewService(repo),
		fetcher,
		site.NewGenerator(cfg.Site.TemplatePath, cfg.Site.OutputDir),
		os.Stdin,
		os.Stdout,
	)
	return sess.run()
}
