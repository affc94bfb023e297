package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jsphweid/chordwav/model"
	"github.com/jsphweid/chordwav/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oneSecond = model.TimingConfig{PulsesPerBeat: 480, MicrosecondsPerBeat: 500000, ChordDurationSeconds: 1}

func runPrompt(input string, usePresets bool) (model.Song, string, error) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(input), &out)
	song, err := p.song(oneSecond, usePresets)
	return song, out.String(), err
}

func TestPromptTypedChords(t *testing.T) {
	song, out, err := runPrompt("C4 E4 G4\n\n  G4 B4 D5  \nDONE\nn\n", false)
	require.NoError(t, err)
	require.Len(t, song.Tracks, 1)
	assert.Equal(t, 960, song.Tracks[0].Length)
	assert.Contains(t, out, "Chord 3: ")
}

func TestPromptParallelTracks(t *testing.T) {
	song, _, err := runPrompt("C4 E4 G4\ndone\ny\nC3\nG2\ndone\nno\n", false)
	require.NoError(t, err)
	require.Len(t, song.Tracks, 2)
	assert.Equal(t, 480, song.Tracks[0].Length)
	assert.Equal(t, 960, song.Tracks[1].Length)
	assert.Equal(t, 1.0, song.Seconds())
}

func TestPromptBadTrackCanBeRetyped(t *testing.T) {
	song, out, err := runPrompt("C4 H4\ndone\ny\nC4 E4\ndone\nn\n", false)
	require.NoError(t, err)
	assert.Len(t, song.Tracks, 1)
	assert.Contains(t, out, "Skipping track")
}

func TestPromptEndOfInput(t *testing.T) {
	// a track cut short by EOF is still kept
	song, _, err := runPrompt("C4 E4 G4\n", false)
	require.NoError(t, err)
	assert.Len(t, song.Tracks, 1)

	_, _, err = runPrompt("", false)
	assert.ErrorIs(t, err, errNoChords)

	_, _, err = runPrompt("done\nn\n", false)
	assert.ErrorIs(t, err, errNoChords)
}

func TestPromptPresets(t *testing.T) {
	song, out, err := runPrompt("0,3\ny\n99\ny\n1\nn\n", true)
	require.NoError(t, err)
	require.Len(t, song.Tracks, 2)
	assert.Equal(t, 7*480, song.Tracks[0].Length)
	assert.Equal(t, 4*480, song.Tracks[1].Length)
	assert.Contains(t, out, "unknown preset")
	assert.Contains(t, out, "(0-19)")
}

func TestSoundFontPromptRetries(t *testing.T) {
	sf := t.TempDir()
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("/no/such/file.sf2\n"+sf+"\n"), &out)
	got, err := p.soundFont()
	require.NoError(t, err)
	assert.Equal(t, sf, got)
	assert.Contains(t, out.String(), "does not exist")

	p = newPrompter(strings.NewReader(""), &out)
	_, err = p.soundFont()
	assert.Error(t, err)
}

func TestBuildProgression(t *testing.T) {
	progression, err := buildProgression("", []string{"C4 E4 G4", "  A3 C4  E4 "})
	require.NoError(t, err)
	assert.Equal(t, model.Progression{{"C4", "E4", "G4"}, {"A3", "C4", "E4"}}, progression)

	progression, err = buildProgression("3", []string{"C4"})
	require.NoError(t, err)
	assert.Len(t, progression, 4)
	assert.Equal(t, model.Chord{"C4"}, progression[3])

	_, err = buildProgression("", nil)
	assert.Error(t, err)

	_, err = buildProgression("42", nil)
	assert.ErrorIs(t, err, preset.ErrUnknownPreset)
}
