// Package cmd defines and implements the CLI commands for the wodbot
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wodbot/wodbot/internal/classify"
	"github.com/wodbot/wodbot/internal/config"
	"github.com/wodbot/wodbot/internal/dates"
	"github.com/wodbot/wodbot/internal/extract"
	"github.com/wodbot/wodbot/internal/fetch"
	"github.com/wodbot/wodbot/internal/logging"
	"github.com/wodbot/wodbot/internal/pipeline"
	"github.com/wodbot/wodbot/internal/wod"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wodbot",
		Short: "Fetches the workout of the day and extracts a structured record",
		Long: `wodbot retrieves the daily published workout page and converts its
loosely structured HTML into a stable structured record: calendar date,
rest-day flag, workout text, and an optional scaled variant. The record
feeds downstream notifiers.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")

	cmd.AddCommand(newWodCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired pipeline with its configuration and shutdown
// hook.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
	close    func()
}

// buildApp loads configuration and wires the full pipeline: fetcher
// (with block detector and optional headless renderer), locator, date
// normalizer, and classifier.
func buildApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	closeFns := []func(){func() { _ = logger.Sync() }}

	detector := fetch.NewBlockDetector(cfg.HTTP.MinBodyBytes, cfg.HTTP.BlockMarkers, nil)

	var renderer fetch.Renderer
	if cfg.Headless.Enabled {
		chromeRenderer, rErr := fetch.NewChromedpRenderer(cfg.HTTP.UserAgent, cfg.Headless.NavTimeout(), logger)
		if rErr != nil {
			return nil, fmt.Errorf("start headless renderer: %w", rErr)
		}
		closeFns = append(closeFns, chromeRenderer.Close)
		renderer = chromeRenderer
	}

	fetcher, err := fetch.New(fetch.Config{
		UserAgent:  cfg.HTTP.UserAgent,
		Timeout:    cfg.HTTP.Timeout(),
		MaxRetries: cfg.HTTP.MaxRetries,
		BaseDelay:  cfg.HTTP.BaseDelay(),
	}, detector, renderer, logger)
	if err != nil {
		return nil, fmt.Errorf("build fetcher: %w", err)
	}

	clock := wod.SystemClock{}
	pl := pipeline.New(
		fetcher,
		extract.NewLocator(cfg.Keywords),
		dates.NewNormalizer(clock),
		classify.NewClassifier(cfg.RestDay),
		clock,
		logger,
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: pl,
		close: func() {
			for i := len(closeFns) - 1; i >= 0; i-- {
				closeFns[i]()
			}
		},
	}, nil
}
