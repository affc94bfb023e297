package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordwav/preset"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Lists the built-in progressions",
	Long:  `Lists the built-in progressions with the index used by --preset.`,
	Run: func(cmd *cobra.Command, args []string) {
		for i, p := range preset.All() {
			chords := make([]string, len(p.Progression))
			for j, c := range p.Progression {
				chords[j] = strings.Join(c, " ")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-22s %s\n", i, p.Label, strings.Join(chords, " | "))
		}
	},
}
