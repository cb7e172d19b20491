package cmd

import (
	"github.com/jsphweid/abcplay/file"
	"github.com/jsphweid/abcplay/midi"
	"github.com/jsphweid/abcplay/render"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var playPort int

func init() {
	playCmd.Flags().IntVarP(&playPort, "port", "p", 0, "MIDI output port number (default ABC_MIDI_PORT)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <tune.abc>",
	Short: "Plays a tune on a MIDI output port",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port := cfg.MidiPort
		if cmd.Flags().Changed("port") {
			port = playPort
		}
		defer gomidi.CloseDriver()

		src, err := file.ReadSource(args[0])
		if err != nil {
			return err
		}
		_, err = render.Play(src, cfg.TicksPerUnit, midi.PortSink{Port: port})
		return err
	},
}
