package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordwav/chord"
	"github.com/jsphweid/chordwav/midi"
	"github.com/jsphweid/chordwav/note"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a track file",
	Long:  `Prints the chords sounding in a MIDI file, one line per change.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		chords, err := chord.GetChords(s)
		if err != nil {
			return err
		}
		for _, c := range chords {
			names := make([]string, len(c.Notes))
			for i, n := range c.Notes {
				names[i] = note.Name(int(n))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tick %6d  %7.3fs  %-16s %s\n",
				c.AbsTickOffset, float64(c.Offset)/1e6, strings.Join(names, " "), chord.CreateChordKey(c.Notes))
		}
		return nil
	},
}
