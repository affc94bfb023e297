package cmd

import (
	"errors"
	"strings"

	"github.com/jsphweid/chordwav/model"
	"github.com/jsphweid/chordwav/preset"
	"github.com/jsphweid/chordwav/sequence"
	"github.com/spf13/cobra"
)

var (
	renderTiming  timingOptions
	renderOutput  outputOptions
	renderPresets string
)

func init() {
	renderTiming.register(renderCmd)
	renderOutput.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderPresets, "preset", "p", "", "comma separated preset indices, played before any typed chords")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   `render ["C4 E4 G4" "G4 B4 D5" ...]`,
	Short: "Renders chords to a WAV file",
	Long: `Renders chords to a WAV file. Each argument is one chord, notes separated by spaces.
Presets (see "chordwav presets") can be used instead of, or before, typed chords.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		progression, err := buildProgression(renderPresets, args)
		if err != nil {
			return err
		}
		song, err := sequence.AppendTrack(sequence.NewSong(renderTiming.resolution), progression, renderTiming.config())
		if err != nil {
			return err
		}
		return produce(cmd.Context(), cmd.OutOrStdout(), song, renderOutput)
	},
}

func parseChord(line string) model.Chord {
	return model.Chord(strings.Fields(line))
}

func buildProgression(presets string, args []string) (model.Progression, error) {
	var progression model.Progression
	if presets != "" {
		indices, err := preset.ParseIndices([]string{presets})
		if err != nil {
			return nil, err
		}
		progression, err = preset.Select(indices)
		if err != nil {
			return nil, err
		}
	}
	for _, arg := range args {
		progression = append(progression, parseChord(arg))
	}
	if len(progression) == 0 {
		return nil, errors.New("no chords given")
	}
	return progression, nil
}
