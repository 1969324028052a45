package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/tapestry/internal/app"
	"github.com/muurk/tapestry/internal/components/feed"
	"github.com/muurk/tapestry/internal/components/tracker"
	"github.com/muurk/tapestry/internal/config"
	"github.com/muurk/tapestry/internal/logging"
	"github.com/muurk/tapestry/internal/version"
)

var (
	flagFrameRate float64
	flagLogLevel  string
	flagLogFile   string
	flagStateFile string
	flagFeedURL   string
)

var rootCmd = &cobra.Command{
	Use:   "tapestry",
	Short: "Terminal task tracker",
	Long: `A terminal task tracker with a live log pane.

Runs a single-loop component runtime: the task list renders on the left,
recent log entries on the right, and an optional websocket feed overlays
the bottom of the task pane. State is saved every few seconds and once
more on quit (ctrl+q).`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().Float64Var(&flagFrameRate, "frame-rate", config.DefaultFrameRate, "tick/render cadence in events per second")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log verbosity: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "append console-format logs to this file")
	rootCmd.Flags().StringVar(&flagStateFile, "state-file", "", "path of the task state file")
	rootCmd.Flags().StringVar(&flagFeedURL, "feed", "", "websocket URL to stream feed messages from")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tapestry %s\n", version.Full())
	},
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override the config file.
	if cmd.Flags().Changed("frame-rate") {
		cfg.FrameRate = flagFrameRate
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if cmd.Flags().Changed("state-file") {
		cfg.StateFile = flagStateFile
	}
	if cmd.Flags().Changed("feed") {
		cfg.FeedURL = flagFeedURL
	}

	if err := logging.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	defer func() { _ = logging.Sync() }()

	statePath, err := cfg.StatePath()
	if err != nil {
		return err
	}

	opts := []app.Option{app.WithFrameRate(cfg.FrameRate)}
	if cfg.FeedURL != "" {
		f := feed.New(cfg.FeedURL)
		// The loop never delivers a shutdown signal to attached
		// components; the connection is torn down here once Run returns.
		defer func() { _ = f.Close() }()
		opts = append(opts, app.WithComponent(f))
	}

	return app.New(tracker.New(statePath), opts...).Run(cmd.Context())
}
