// Package note resolves note names like "C4", "F#3" or "Bb2" to MIDI pitch
// numbers, where C4 is 60.
package note

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidNoteFormat = errors.New("invalid note format")
	ErrInvalidAccidental = errors.New("invalid accidental")
)

const (
	Sharp = '#'
	Flat  = 'b'

	maxOctave = 99
)

// semitone offsets within an octave. Sharps only, flats are derived.
var base = map[string]int{
	"C":  0,
	"C#": 1,
	"D":  2,
	"D#": 3,
	"E":  4,
	"F":  5,
	"F#": 6,
	"G":  7,
	"G#": 8,
	"A":  9,
	"A#": 10,
	"B":  11,
}

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func Resolve(token string) (int, error) {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return 0, fmt.Errorf("%w: %q is too short", ErrInvalidNoteFormat, token)
	}

	letter := strings.ToUpper(token[:1])
	if letter[0] < 'A' || letter[0] > 'G' {
		return 0, fmt.Errorf("%w: bad letter in %q", ErrInvalidNoteFormat, token)
	}

	var accidental byte
	octaveStr := token[1:]
	if len(token) >= 3 && (token[1] == Sharp || token[1] == Flat) {
		accidental = token[1]
		octaveStr = token[2:]
	}

	octave, err := strconv.Atoi(octaveStr)
	if err != nil {
		return 0, fmt.Errorf("%w: bad octave in %q", ErrInvalidNoteFormat, token)
	}
	if octave < -maxOctave || octave > maxOctave {
		return 0, fmt.Errorf("%w: octave %d in %q is out of range", ErrInvalidNoteFormat, octave, token)
	}

	var offset int
	switch accidental {
	case Flat:
		// one below the natural, wrapping within the octave: Cb4 is 71
		offset = (base[letter] - 1 + 12) % 12
	case Sharp:
		v, ok := base[letter+string(Sharp)]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAccidental, token)
		}
		offset = v
	default:
		offset = base[letter]
	}

	return 12*(octave+1) + offset, nil
}

// Name spells a pitch number with sharps, e.g. 61 -> "C#4".
func Name(pitch int) string {
	octave := pitch/12 - 1
	class := pitch % 12
	if class < 0 {
		class += 12
		octave--
	}
	return fmt.Sprintf("%s%d", names[class], octave)
}
