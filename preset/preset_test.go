package preset

import (
	"testing"

	"github.com/jsphweid/chordwav/chord"
	"github.com/jsphweid/chordwav/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryPresetResolves(t *testing.T) {
	require.Equal(t, 20, Len())
	for _, p := range All() {
		t.Run(p.Label, func(t *testing.T) {
			assert.NotEmpty(t, p.Progression)
			for _, c := range p.Progression {
				pitches, err := chord.Resolve(c)
				assert.NoError(t, err)
				assert.Len(t, pitches, 3)
			}
		})
	}
}

func TestSelectConcatenates(t *testing.T) {
	progression, err := Select([]int{3, 0})
	require.NoError(t, err)
	assert.Len(t, progression, 3+4)
	assert.Equal(t, model.Chord{"D4", "F4", "A4"}, progression[0])
	assert.Equal(t, model.Chord{"C4", "E4", "G4"}, progression[3])
}

func TestSelectOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 20, 100} {
		_, err := Select([]int{0, idx})
		assert.ErrorIs(t, err, ErrUnknownPreset)
	}
}

func TestSelectedChordsAreCopies(t *testing.T) {
	progression, err := Select([]int{0})
	require.NoError(t, err)
	progression[0][0] = "B9"

	again, err := Select([]int{0})
	require.NoError(t, err)
	assert.Equal(t, "C4", again[0][0])
}

func TestParseIndices(t *testing.T) {
	indices, err := ParseIndices([]string{"0,3", " 7 ", "12,"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 7, 12}, indices)

	_, err = ParseIndices([]string{"1", "two"})
	assert.ErrorIs(t, err, ErrUnknownPreset)
}
