package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/chordwav/constants"
	"github.com/jsphweid/chordwav/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrPitchOutOfRange = errors.New("pitch out of MIDI range")

const (
	maxPulsesPerBeat = 0x7FFF
	maxTempo         = 0xFFFFFF
	// variable-length quantities stop at four bytes
	maxDelta = 0x0FFFFFFF
)

var errDeltaTooLong = errors.New("silence too long for one delta time")

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = &blank
			e = fmt.Errorf("Error parsing midi file... %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("Error reading midi file... %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("Error parsing midi file... %w", err)
	}

	return res, nil
}

// tempo builds the set-tempo meta event directly so the microsecond value
// survives exactly rather than going through BPM.
func tempo(microsecondsPerBeat int) smf.Message {
	us := uint32(microsecondsPerBeat)
	return smf.Message([]byte{0xFF, 0x51, 0x03, byte(us >> 16), byte(us >> 8), byte(us)})
}

func key(pitch int) (uint8, error) {
	if pitch < 0 || pitch > 127 {
		return 0, fmt.Errorf("%w: %d", ErrPitchOutOfRange, pitch)
	}
	return uint8(pitch), nil
}

// Encode lays every track of the song out as an SMF track: tempo first, then
// the events in order. A rest becomes delta time on whatever follows it, so
// no placeholder note is ever written.
func Encode(song model.Song) (*smf.SMF, error) {
	if len(song.Tracks) == 0 {
		return nil, errors.New("song has no tracks")
	}
	if song.PulsesPerBeat <= 0 || song.PulsesPerBeat > maxPulsesPerBeat {
		return nil, fmt.Errorf("pulses per beat %d does not fit a metric time format", song.PulsesPerBeat)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(song.PulsesPerBeat)

	for i, t := range song.Tracks {
		if t.MicrosecondsPerBeat <= 0 || t.MicrosecondsPerBeat > maxTempo {
			return nil, fmt.Errorf("track %d: tempo %d does not fit a tempo event", i, t.MicrosecondsPerBeat)
		}

		var track smf.Track
		track.Add(0, tempo(t.MicrosecondsPerBeat))

		var delta uint32
		for _, evt := range t.Events {
			switch evt.Kind {
			case model.Rest:
				if evt.Length < 0 || int64(delta)+int64(evt.Length) > maxDelta {
					return nil, fmt.Errorf("track %d: %w: %d pulses", i, errDeltaTooLong, int64(delta)+int64(evt.Length))
				}
				delta += uint32(evt.Length)
			case model.NoteOn:
				k, err := key(evt.Pitch)
				if err != nil {
					return nil, fmt.Errorf("track %d: %w", i, err)
				}
				track.Add(delta, midi.NoteOn(constants.Channel, k, constants.Velocity))
				delta = 0
			case model.NoteOff:
				k, err := key(evt.Pitch)
				if err != nil {
					return nil, fmt.Errorf("track %d: %w", i, err)
				}
				track.Add(delta, midi.NoteOffVelocity(constants.Channel, k, constants.Velocity))
				delta = 0
			}
		}
		// a trailing empty chord still holds its time
		track.Close(delta)

		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("adding track %d: %w", i, err)
		}
	}
	return s, nil
}

func Write(w io.Writer, song model.Song) error {
	s, err := Encode(song)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}

// WriteMidiFile writes next to path first and renames into place, so an
// existing file at path is either fully replaced or left alone.
func WriteMidiFile(path string, song model.Song) error {
	s, err := Encode(song)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".track-*.mid")
	if err != nil {
		return fmt.Errorf("creating track file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := s.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing track file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing track file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving track file: %w", err)
	}
	return nil
}
