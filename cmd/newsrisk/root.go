package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"NewsRisk/internal/app"
	"NewsRisk/internal/config"
	"NewsRisk/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
}

var rootCmd = &cobra.Command{
	Use:           "newsrisk",
	Short:         "Emerging cyber-risk briefing pipeline",
	Long:          "newsrisk searches recent cyber-risk news, summarizes it with an LLM,\nderives action points and writes a project plan for each of them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "YAML config file (defaults to $NEWSRISK_CONFIG)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.Version = version
}

func loadConfig() (config.Config, error) {
	if rootFlags.configPath != "" {
		return config.LoadFrom(rootFlags.configPath)
	}
	return config.Load()
}

// newApplication loads configuration and builds the wired application.
func newApplication(ctx context.Context) (*app.Application, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Output)
	logger.Debug("configuration loaded", "config", cfg.String())

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return application, logger, nil
}
