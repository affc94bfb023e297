package note

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleCIs60(t *testing.T) {
	p, err := Resolve("C4")
	require.NoError(t, err)
	assert.Equal(t, 60, p)
}

func TestNaturals(t *testing.T) {
	cases := map[string]int{
		"C4": 60, "D4": 62, "E4": 64, "F4": 65, "G4": 67, "A4": 69, "B4": 71,
		"A3": 57, "D5": 74, "A0": 21, "C-1": 0, "G9": 127,
	}
	for token, want := range cases {
		t.Run(token, func(t *testing.T) {
			p, err := Resolve(token)
			require.NoError(t, err)
			assert.Equal(t, want, p)
		})
	}
}

func TestEnharmonicSpellingsMatch(t *testing.T) {
	pairs := [][2]string{{"C#", "Db"}, {"D#", "Eb"}, {"F#", "Gb"}, {"G#", "Ab"}, {"A#", "Bb"}}
	for octave := -1; octave <= 8; octave++ {
		for _, pair := range pairs {
			sharp := fmt.Sprintf("%s%d", pair[0], octave)
			flat := fmt.Sprintf("%s%d", pair[1], octave)
			t.Run(sharp+"="+flat, func(t *testing.T) {
				s, err := Resolve(sharp)
				require.NoError(t, err)
				f, err := Resolve(flat)
				require.NoError(t, err)
				assert.Equal(t, s, f)
			})
		}
	}
}

func TestFlatsOfNaturalsWithoutSharps(t *testing.T) {
	assert := assert.New(t)

	fb, err := Resolve("Fb4")
	assert.NoError(err)
	e, _ := Resolve("E4")
	assert.Equal(e, fb)

	// the flat wraps within its own octave
	cb, err := Resolve("Cb4")
	assert.NoError(err)
	b, _ := Resolve("B4")
	assert.Equal(b, cb)
	assert.Equal(71, cb)
}

func TestOctaveBounds(t *testing.T) {
	for _, token := range []string{"C99", "C-99", "Bb99", "F#-99"} {
		_, err := Resolve(token)
		assert.NoError(t, err, token)
	}
	for _, token := range []string{"C100", "C-100", "C1000000000000000000", "Db768614336404564650"} {
		_, err := Resolve(token)
		assert.ErrorIs(t, err, ErrInvalidNoteFormat, token)
	}
}

func TestOctavesAreTwelveApart(t *testing.T) {
	for _, name := range []string{"C", "C#", "Db", "E", "F#", "Gb", "A", "Bb", "B"} {
		for octave := -1; octave < 9; octave++ {
			lo, err := Resolve(fmt.Sprintf("%s%d", name, octave))
			require.NoError(t, err)
			hi, err := Resolve(fmt.Sprintf("%s%d", name, octave+1))
			require.NoError(t, err)
			assert.Equal(t, lo+12, hi, "%s%d", name, octave)
		}
	}
}

func TestLenientInput(t *testing.T) {
	cases := map[string]int{
		"  C4 ": 60,
		"c4":    60,
		"bb3":   58,
		"f#3":   54,
		"C+4":   60,
	}
	for token, want := range cases {
		t.Run(token, func(t *testing.T) {
			p, err := Resolve(token)
			require.NoError(t, err)
			assert.Equal(t, want, p)
		})
	}
}

func TestMalformedTokens(t *testing.T) {
	for _, token := range []string{"", " ", "C", "H4", "Cx", "Cb", "C#", "C4.5", "C$4", "4C", "Z#4"} {
		t.Run(fmt.Sprintf("%q", token), func(t *testing.T) {
			_, err := Resolve(token)
			assert.ErrorIs(t, err, ErrInvalidNoteFormat)
		})
	}
}

func TestSharpsMissingFromTable(t *testing.T) {
	for _, token := range []string{"E#4", "B#3"} {
		t.Run(token, func(t *testing.T) {
			_, err := Resolve(token)
			assert.ErrorIs(t, err, ErrInvalidAccidental)
			assert.NotErrorIs(t, err, ErrInvalidNoteFormat)
		})
	}
}

func TestName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C4", Name(60))
	assert.Equal("C#4", Name(61))
	assert.Equal("B3", Name(59))
	assert.Equal("C-1", Name(0))
	assert.Equal("B-2", Name(-1))

	for p := 0; p < 128; p++ {
		back, err := Resolve(Name(p))
		assert.NoError(err)
		assert.Equal(p, back)
	}
}
