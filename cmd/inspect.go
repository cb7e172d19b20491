package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jsphweid/abcplay/chord"
	"github.com/jsphweid/abcplay/constants"
	"github.com/jsphweid/abcplay/file"
	"github.com/jsphweid/abcplay/midi"
	"github.com/jsphweid/abcplay/render"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <tune.abc|file.mid>",
	Short: "Lists the chords of a tune or rendered file",
	Long: `Lists every tick where notes start, with the keys sounding at that
moment, e.g. "32: 60-64-67".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mf, err := loadSMF(args[0])
		if err != nil {
			return err
		}
		for _, onset := range chord.Onsets(mf) {
			fmt.Fprintf(cmd.OutOrStdout(), "%v: %v\n", onset.AbsTickOffset, chord.Key(onset.Notes))
		}
		return nil
	},
}

func loadSMF(path string) (*smf.SMF, error) {
	if !strings.EqualFold(filepath.Ext(path), constants.AbcExtension) {
		return midi.ReadFile(path)
	}
	src, err := file.ReadSource(path)
	if err != nil {
		return nil, err
	}
	res, err := render.Tune(src, render.Options{TicksPerUnit: cfg.TicksPerUnit})
	if err != nil {
		return nil, err
	}
	return res.SMF, nil
}
