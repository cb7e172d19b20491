package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/abcplay/file"
	"github.com/jsphweid/abcplay/parser"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <tune.abc>",
	Short: "Prints the header of a tune",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := file.ReadSource(args[0])
		if err != nil {
			return err
		}
		piece, err := parser.Parse(src)
		if err != nil {
			return err
		}
		md := piece.Metadata()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id:       %s\n", md.ID)
		fmt.Fprintf(out, "title:    %s\n", md.Title)
		fmt.Fprintf(out, "composer: %s\n", md.Composer)
		fmt.Fprintf(out, "meter:    %s\n", md.Meter)
		fmt.Fprintf(out, "length:   %s\n", md.DefaultLength)
		fmt.Fprintf(out, "tempo:    %d\n", md.Tempo)
		fmt.Fprintf(out, "key:      %s\n", md.Key)
		fmt.Fprintf(out, "voices:   %s\n", strings.Join(md.Voices, ", "))
		for _, v := range piece.Voices {
			fmt.Fprintf(out, "  %s: %d sections, %d measures\n", v.Name, len(v.Sections), len(v.Measures()))
		}
		return nil
	},
}
