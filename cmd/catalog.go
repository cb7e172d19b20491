package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/abcplay/db"
	"github.com/jsphweid/abcplay/file"
	"github.com/jsphweid/abcplay/parser"
	"github.com/spf13/cobra"
)

func init() {
	catalogCmd.AddCommand(catalogAddCmd, catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Stores and looks up tune headers in DynamoDB",
	Long: `Keeps the header of every tune (title, composer, key, meter, voices) in
a DynamoDB table, keyed by the path of the tune. DYNAMO_ENDPOINT points at a
local DynamoDB by default.`,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <tune.abc|dir>",
	Short: "Parses tunes and stores their headers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := db.NewCatalog(cfg)
		if err != nil {
			return err
		}
		paths, err := file.Gather(args[0], 0)
		if err != nil {
			return err
		}
		for _, path := range paths {
			src, err := file.ReadSource(path)
			if err != nil {
				return err
			}
			piece, err := parser.Parse(src)
			if err != nil {
				slog.Error("skipping tune", "path", path, "err", err)
				continue
			}
			if err := catalog.PutPiece(cmd.Context(), path, piece.Metadata()); err != nil {
				return err
			}
		}
		slog.Info("cataloged tunes", "count", len(paths))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <tune.abc>...",
	Short: "Prints the stored headers of tunes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := db.NewCatalog(cfg)
		if err != nil {
			return err
		}
		pieces, err := catalog.GetPieces(cmd.Context(), args)
		if err != nil {
			return err
		}
		for _, path := range args {
			md, ok := pieces[path]
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not cataloged\n", path)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s) in %s, %s\n", path, md.Title, md.Composer, md.Key, md.Meter)
		}
		return nil
	},
}
