package model

// NoteName is a token such as "C4", "F#3" or "Bb2".
type NoteName = string

// Chord is a set of note names sounded and released together.
type Chord = []NoteName

type Progression = []Chord

type Notes = []uint8

// ChordAt is a sounding chord recovered from a track.
type ChordAt struct {
	AbsTickOffset uint32
	// NOTE: microseconds from the start of the file, derived from the tempo map
	Offset int64
	Notes  Notes
}
