package model

import "fmt"

type EventKind uint8

const (
	NoteOn EventKind = iota
	NoteOff
	// Rest marks the sounding period of a chord. It never carries a pitch.
	Rest
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	case Rest:
		return "rest"
	}
	return "unknown"
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for _, kind := range []EventKind{NoteOn, NoteOff, Rest} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// TimedEvent is one entry of a sequenced track. Offset is relative to
// ChordStart; Length is only set for Rest.
type TimedEvent struct {
	Kind       EventKind `json:"kind"`
	Pitch      int       `json:"pitch"`
	ChordStart int       `json:"chord_start"`
	Offset     int       `json:"offset"`
	Length     int       `json:"length,omitempty"`
}

// Tick is the event's absolute position in pulses.
func (e TimedEvent) Tick() int {
	return e.ChordStart + e.Offset
}
