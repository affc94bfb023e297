package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/chordwav/model"
	"github.com/jsphweid/chordwav/note"
	"github.com/jsphweid/chordwav/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Resolve turns every note name of a chord into a pitch number, stopping at
// the first bad token.
func Resolve(c model.Chord) ([]int, error) {
	pitches := make([]int, 0, len(c))
	for _, name := range c {
		p, err := note.Resolve(name)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, n := range sorted {
		res += fmt.Sprintf("%v", n)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

type reducedEvent struct {
	absTicks  int64
	offset    int64
	isNoteOff bool
	note      uint8
}

func getChord(pressed map[uint8]bool, evt reducedEvent) model.ChordAt {
	notes := util.GetKeys(pressed)
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	return model.ChordAt{
		AbsTickOffset: uint32(evt.absTicks),
		Offset:        evt.offset,
		Notes:         notes,
	}
}

// GetChords rebuilds the sounding chords of a file, ordered by time. A chord
// is reported at every tick where the set of held notes changes and is not
// empty.
func GetChords(s *smf.SMF) (chords []model.ChordAt, err error) {
	// smf.TimeAt panics on some malformed tempo maps
	defer func() {
		if r := recover(); r != nil {
			chords = nil
			err = fmt.Errorf("reading chords: %v", r)
		}
	}()

	var reduced []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				reduced = append(reduced, reducedEvent{
					absTicks: absTicks,
					offset:   s.TimeAt(absTicks),
					note:     key,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				reduced = append(reduced, reducedEvent{
					absTicks:  absTicks,
					offset:    s.TimeAt(absTicks),
					isNoteOff: true,
					note:      key,
				})
			}
		}
	}

	// file order decides within a tick, so a zero-length note is released
	// right after it starts
	sort.SliceStable(reduced, func(i, j int) bool {
		return reduced[i].absTicks < reduced[j].absTicks
	})

	pressed := make(map[uint8]bool)
	for i, evt := range reduced {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = true
		}
		last := i == len(reduced)-1 || reduced[i+1].absTicks != evt.absTicks
		if last && len(pressed) > 0 {
			chords = append(chords, getChord(pressed, evt))
		}
	}
	return chords, nil
}
