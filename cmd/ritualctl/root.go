package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/ritual-service/internal/platform/config"
	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
)

// globalFlags are shared by every subcommand that needs configuration.
type globalFlags struct {
	configDir string
	profile   string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "ritualctl",
		Short:         "Operate the ritual service",
		Long:          "ritualctl looks up sun signs, fulfils paid orders and previews ritual PDFs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultProfile := os.Getenv("APP_ENVIRONMENT")
	if defaultProfile == "" {
		defaultProfile = "local"
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "configs", "directory holding base.yaml and profile files")
	root.PersistentFlags().StringVar(&flags.profile, "profile", defaultProfile, "configuration profile")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newSignCmd(),
		newFulfilCmd(flags),
		newRenderCmd(),
	)

	return root
}

// load reads and validates configuration and builds a logger writing to stderr.
func (f *globalFlags) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(f.configDir, f.profile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  "pretty",
		Service: "ritualctl",
		Version: cfg.App.Version,
	}, os.Stderr)
	logging.SetDefault(logger)

	return cfg, logger, nil
}
