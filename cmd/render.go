package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jsphweid/abcplay/db"
	"github.com/jsphweid/abcplay/file"
	"github.com/jsphweid/abcplay/midi"
	"github.com/jsphweid/abcplay/render"
	"github.com/jsphweid/abcplay/util"
	"github.com/spf13/cobra"
)

var (
	renderOut      string
	renderFromTick uint64
	renderMaxNotes int
	renderMaxFiles int
	renderCatalog  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file, only for a single tune (default: a new name in the output dir)")
	renderCmd.Flags().Uint64Var(&renderFromTick, "from-tick", 0, "start the rendered file at this tick")
	renderCmd.Flags().IntVar(&renderMaxNotes, "max-notes", 0, "stop after this many note events (0 for all)")
	renderCmd.Flags().IntVar(&renderMaxFiles, "max", 0, "render at most this many tunes of a directory (0 for all)")
	renderCmd.Flags().BoolVar(&renderCatalog, "catalog", false, "store each tune's header in the catalog")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <tune.abc|dir>",
	Short: "Renders tunes to MIDI files",
	Long: `Renders a tune, or every .abc file below a directory, to standard MIDI
files in the output directory (ABC_OUT_DIR).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Render(cmd.Context(), args[0])
	},
}

// Render renders every tune found at path. A failing tune in a directory is
// logged and skipped; the error reports how many failed.
func Render(ctx context.Context, path string) error {
	paths, err := file.Gather(path, renderMaxFiles)
	if err != nil {
		return err
	}
	if renderOut != "" && len(paths) != 1 {
		return fmt.Errorf("--out needs a single tune, found %d", len(paths))
	}
	if err := file.EnsureDir(cfg.OutDir); err != nil {
		return err
	}

	var catalog *db.Catalog
	if renderCatalog {
		if catalog, err = db.NewCatalog(cfg); err != nil {
			return err
		}
	}

	opts := render.Options{
		TicksPerUnit: cfg.TicksPerUnit,
		FromTick:     renderFromTick,
		MaxNotes:     renderMaxNotes,
	}
	fileNumMap := file.CreateFileNumMap(paths)
	var failed int
	for _, num := range util.GetKeys(fileNumMap) {
		src := fileNumMap[num]
		out := renderOut
		if out == "" {
			out = filepath.Join(cfg.OutDir, file.OutputName(src))
		}
		if err := renderOne(ctx, src, out, opts, catalog); err != nil {
			if len(paths) == 1 {
				return err
			}
			slog.Error("skipping tune", "num", num, "path", src, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tunes failed to render", failed, len(paths))
	}
	slog.Info("rendered tunes", "count", len(paths), "dir", cfg.OutDir)
	return nil
}

func renderOne(ctx context.Context, src, out string, opts render.Options, catalog *db.Catalog) error {
	text, err := file.ReadSource(src)
	if err != nil {
		return err
	}
	res, err := render.Tune(text, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := (midi.FileSink{Path: out}).Write(res.SMF); err != nil {
		return err
	}
	if catalog != nil {
		return catalog.PutPiece(ctx, src, res.Piece.Metadata())
	}
	return nil
}
