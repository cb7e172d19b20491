package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jsphweid/abcplay/config"
	"github.com/spf13/cobra"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

var (
	debug bool
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "abcplay",
	Short: "Plays and renders ABC tunes",
	Long: `abcplay reads tunes written in ABC notation, expands their repeats and
voices, and renders them to standard MIDI files or plays them on a MIDI port.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(debug)
		cfg = config.Load()
		initSentry(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output")
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
}

func initSentry(cfg *config.Config) {
	if cfg.SentryDSN == "" {
		slog.Debug("sentry not configured")
		return
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     "abcplay@" + releaseVersion,
	})
	if err != nil {
		slog.Warn("failed to initialize sentry", "err", err)
		return
	}
	slog.Debug("sentry initialized", "environment", cfg.Environment)
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		sentry.CaptureException(err)
	}
	sentry.Flush(sentryFlushTimeout)
	cobra.CheckErr(err)
}
