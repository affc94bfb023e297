package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/chordwav/model"
	"github.com/jsphweid/chordwav/preset"
	"github.com/jsphweid/chordwav/sequence"
	"github.com/spf13/cobra"
)

var (
	promptTiming     timingOptions
	promptOutput     outputOptions
	promptUsePresets bool
)

func init() {
	promptTiming.register(promptCmd)
	promptOutput.register(promptCmd)
	promptCmd.Flags().BoolVar(&promptUsePresets, "presets", false, "pick tracks from the preset table instead of typing chords")
	rootCmd.AddCommand(promptCmd)
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Builds a song interactively",
	Long: `Asks for chords one per line (or preset indices with --presets), one track at a time.
Tracks play together; chords within a track play one after another.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sequence.Validate(promptTiming.config()); err != nil {
			return err
		}
		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if !promptOutput.midiOnly && promptOutput.soundfont == "" {
			sf, err := p.soundFont()
			if err != nil {
				return err
			}
			promptOutput.soundfont = sf
		}
		song, err := p.song(promptTiming.config(), promptUsePresets)
		if err != nil {
			return err
		}
		return produce(cmd.Context(), cmd.OutOrStdout(), song, promptOutput)
	},
}

var errNoChords = errors.New("no chords entered")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask returns false once input is exhausted.
func (p *prompter) ask(question string) (string, bool) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *prompter) soundFont() (string, error) {
	for {
		path, ok := p.ask("Path to the SoundFont (.sf2) to use: ")
		if !ok {
			return "", errors.New("no soundfont given")
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		fmt.Fprintln(p.out, "Path to sf2 does not exist. Try again.")
	}
}

func (p *prompter) typedChords() (model.Progression, bool) {
	fmt.Fprintln(p.out, "Enter one chord per line as note names with octaves (e.g. 'C4 E4 G4'). Type 'done' when finished.")
	var progression model.Progression
	for {
		line, ok := p.ask(fmt.Sprintf("Chord %d: ", len(progression)+1))
		if !ok {
			return progression, false
		}
		if strings.EqualFold(line, "done") {
			return progression, true
		}
		if line != "" {
			progression = append(progression, parseChord(line))
		}
	}
}

func (p *prompter) presetChords() (model.Progression, bool, error) {
	line, ok := p.ask(fmt.Sprintf("Type in your desired progressions (0-%d): ", preset.Len()-1))
	if !ok {
		return nil, false, nil
	}
	indices, err := preset.ParseIndices(strings.Fields(line))
	if err != nil {
		return nil, true, err
	}
	progression, err := preset.Select(indices)
	return progression, true, err
}

func wantsMore(answer string) bool {
	answer = strings.ToLower(answer)
	return answer != "n" && answer != "no"
}

// song collects tracks until the user declines another or input ends. A
// track that fails to sequence is reported and can be entered again.
func (p *prompter) song(timing model.TimingConfig, usePresets bool) (model.Song, error) {
	song := sequence.NewSong(timing.PulsesPerBeat)
	for {
		var progression model.Progression
		var more bool
		var err error
		if usePresets {
			progression, more, err = p.presetChords()
		} else {
			progression, more = p.typedChords()
		}

		switch {
		case err != nil:
			fmt.Fprintf(p.out, "Skipping track: %v\n", err)
		case len(progression) == 0:
			fmt.Fprintln(p.out, "No chords entered.")
		default:
			next, err := sequence.AppendTrack(song, progression, timing)
			if err != nil {
				fmt.Fprintf(p.out, "Skipping track: %v\n", err)
			} else {
				song = next
			}
		}

		if !more {
			break
		}
		answer, ok := p.ask("Add another track? (y/n): ")
		if !ok || !wantsMore(answer) {
			break
		}
	}

	if len(song.Tracks) == 0 {
		return song, errNoChords
	}
	return song, nil
}
