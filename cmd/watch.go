package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/abcplay/file"
	"github.com/jsphweid/abcplay/render"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
	watchSettle   time.Duration
)

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 250*time.Millisecond, "how often to check the tune for changes")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 500*time.Millisecond, "wait this long after the last change before rendering")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <tune.abc>",
	Short: "Re-renders a tune every time it is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := file.EnsureDir(cfg.OutDir); err != nil {
			return err
		}
		out := filepath.Join(cfg.OutDir, file.OutputName(args[0]))
		return watch(ctx, args[0], out)
	},
}

func watch(ctx context.Context, src, out string) error {
	opts := render.Options{TicksPerUnit: cfg.TicksPerUnit}
	rerender := func() {
		if err := renderOne(ctx, src, out, opts, nil); err != nil {
			// keep watching; the next save may fix it
			slog.Error("render failed", "path", src, "err", err)
			return
		}
		slog.Info("rendered", "path", src, "out", out)
	}
	rerender()

	debounced := debounce.New(watchSettle)
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	var last time.Time
	if info, err := os.Stat(src); err == nil {
		last = info.ModTime()
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			info, err := os.Stat(src)
			if err != nil {
				slog.Debug("stat failed", "path", src, "err", err)
				continue
			}
			if info.ModTime().After(last) {
				last = info.ModTime()
				debounced(rerender)
			}
		}
	}
}
