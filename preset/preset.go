// Package preset holds the built-in chord progressions, mostly in C major.
package preset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/chordwav/model"
)

var ErrUnknownPreset = errors.New("unknown preset")

type Preset struct {
	Label       string
	Progression model.Progression
}

var (
	cMaj = model.Chord{"C4", "E4", "G4"}
	dMin = model.Chord{"D4", "F4", "A4"}
	eMin = model.Chord{"E4", "G4", "B4"}
	fMaj = model.Chord{"F4", "A4", "C5"}
	gMaj = model.Chord{"G4", "B4", "D5"}
	aMin = model.Chord{"A3", "C4", "E4"}
)

var presets = []Preset{
	{"I - IV - V - I", model.Progression{cMaj, fMaj, gMaj, cMaj}},
	{"I - vi - IV - V", model.Progression{cMaj, aMin, fMaj, gMaj}},
	{"I - V - vi - IV", model.Progression{cMaj, gMaj, aMin, fMaj}},
	{"ii - V - I", model.Progression{dMin, gMaj, cMaj}},
	{"I - IV - vi - V", model.Progression{cMaj, fMaj, aMin, gMaj}},
	{"I - vi - ii - V", model.Progression{cMaj, aMin, dMin, gMaj}},
	{"I - V - I - V", model.Progression{cMaj, gMaj, cMaj, gMaj}},
	{"I - V - IV - I", model.Progression{cMaj, gMaj, fMaj, cMaj}},
	{"I - vi - iii - IV", model.Progression{cMaj, aMin, eMin, fMaj}},
	{"I - iii - IV - V", model.Progression{cMaj, eMin, fMaj, gMaj}},
	{"I - IV - I - V", model.Progression{cMaj, fMaj, cMaj, gMaj}},
	{"I - vi - ii - V - I", model.Progression{cMaj, aMin, dMin, gMaj, cMaj}},
	{"I - IV - V - vi", model.Progression{cMaj, fMaj, gMaj, aMin}},
	{"vi - IV - I - V", model.Progression{aMin, fMaj, cMaj, gMaj}},
	{"ii - vi - V - I", model.Progression{dMin, aMin, gMaj, cMaj}},
	{"I - V - ii - IV", model.Progression{cMaj, gMaj, dMin, fMaj}},
	{"I - ii - V - I", model.Progression{cMaj, dMin, gMaj, cMaj}},
	{"I - vi - IV - iii", model.Progression{cMaj, aMin, fMaj, eMin}},
	{"iii - vi - IV - V", model.Progression{eMin, aMin, fMaj, gMaj}},
	{"I - V - vi - IV - V", model.Progression{cMaj, gMaj, aMin, fMaj, gMaj}},
}

func Len() int {
	return len(presets)
}

// All returns copies, callers may change them freely.
func All() []Preset {
	res := make([]Preset, len(presets))
	for i, p := range presets {
		res[i] = Preset{Label: p.Label, Progression: clone(p.Progression)}
	}
	return res
}

func clone(p model.Progression) model.Progression {
	res := make(model.Progression, len(p))
	for i, c := range p {
		res[i] = append(model.Chord(nil), c...)
	}
	return res
}

// Select concatenates the chosen presets back to back.
func Select(indices []int) (model.Progression, error) {
	var res model.Progression
	for _, idx := range indices {
		if idx < 0 || idx >= len(presets) {
			return nil, fmt.Errorf("%w: %d (have 0-%d)", ErrUnknownPreset, idx, len(presets)-1)
		}
		res = append(res, clone(presets[idx].Progression)...)
	}
	return res, nil
}

// ParseIndices accepts fields like "0", "3" or "0,3".
func ParseIndices(fields []string) ([]int, error) {
	var res []int
	for _, field := range fields {
		for _, part := range strings.Split(field, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			idx, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrUnknownPreset, part)
			}
			res = append(res, idx)
		}
	}
	return res, nil
}
