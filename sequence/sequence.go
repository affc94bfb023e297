// Package sequence turns chord progressions into timed note events.
package sequence

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsphweid/chordwav/chord"
	"github.com/jsphweid/chordwav/model"
)

var ErrInvalidTimingConfig = errors.New("invalid timing config")

// MaxPulsesPerChord is the longest time a single SMF delta can hold.
const MaxPulsesPerChord = 0x0FFFFFFF

func Validate(timing model.TimingConfig) error {
	switch {
	case timing.PulsesPerBeat <= 0:
		return fmt.Errorf("%w: pulses per beat must be positive, got %d", ErrInvalidTimingConfig, timing.PulsesPerBeat)
	case timing.MicrosecondsPerBeat <= 0:
		return fmt.Errorf("%w: tempo must be positive, got %d", ErrInvalidTimingConfig, timing.MicrosecondsPerBeat)
	}
	return validateDuration(timing.ChordDurationSeconds, timing)
}

// validateDuration expects the tempo and resolution of timing to be valid.
func validateDuration(seconds float64, timing model.TimingConfig) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("%w: chord duration must be a non-negative number of seconds, got %v", ErrInvalidTimingConfig, seconds)
	}
	if pulses := exactPulses(seconds, timing); pulses > MaxPulsesPerChord {
		return fmt.Errorf("%w: chord duration of %v seconds is %.0f pulses, at most %d fit", ErrInvalidTimingConfig, seconds, pulses, MaxPulsesPerChord)
	}
	return nil
}

func exactPulses(seconds float64, timing model.TimingConfig) float64 {
	beats := seconds / (float64(timing.MicrosecondsPerBeat) / 1e6)
	return beats * float64(timing.PulsesPerBeat)
}

// pulsesFor truncates: 1.9999 pulses is 1 pulse.
func pulsesFor(seconds float64, timing model.TimingConfig) int {
	return int(exactPulses(seconds, timing))
}

func PulsesPerChord(timing model.TimingConfig) (int, error) {
	if err := Validate(timing); err != nil {
		return 0, err
	}
	return pulsesFor(timing.ChordDurationSeconds, timing), nil
}

func uniform(n int, seconds float64) []float64 {
	durations := make([]float64, n)
	for i := range durations {
		durations[i] = seconds
	}
	return durations
}

// Sequence emits, for every chord in order, its note-ons, one rest spanning
// the chord duration, then its note-offs. Chords follow each other with no
// gap. Nothing is returned if any note fails to resolve.
func Sequence(progression model.Progression, timing model.TimingConfig) ([]model.TimedEvent, error) {
	if err := Validate(timing); err != nil {
		return nil, err
	}
	track, err := SequenceDurations(progression, uniform(len(progression), timing.ChordDurationSeconds), timing)
	if err != nil {
		return nil, err
	}
	return track.Events, nil
}

// SequenceDurations is Sequence with a duration per chord. The duration in
// timing is ignored.
func SequenceDurations(progression model.Progression, durations []float64, timing model.TimingConfig) (model.Track, error) {
	timing.ChordDurationSeconds = 0
	if err := Validate(timing); err != nil {
		return model.Track{}, err
	}
	if len(durations) != len(progression) {
		return model.Track{}, fmt.Errorf("%w: %d durations for %d chords", ErrInvalidTimingConfig, len(durations), len(progression))
	}

	track := model.Track{MicrosecondsPerBeat: timing.MicrosecondsPerBeat}
	var start int
	for i, c := range progression {
		if err := validateDuration(durations[i], timing); err != nil {
			return model.Track{}, fmt.Errorf("chord %d: %w", i, err)
		}
		pitches, err := chord.Resolve(c)
		if err != nil {
			return model.Track{}, fmt.Errorf("chord %d: %w", i, err)
		}
		pulses := pulsesFor(durations[i], timing)
		if i == 0 {
			track.PulsesPerChord = pulses
		} else if pulses != track.PulsesPerChord {
			// chords of varying length have no single value
			track.PulsesPerChord = -1
		}

		for _, p := range pitches {
			track.Events = append(track.Events, model.TimedEvent{Kind: model.NoteOn, Pitch: p, ChordStart: start})
		}
		track.Events = append(track.Events, model.TimedEvent{Kind: model.Rest, ChordStart: start, Length: pulses})
		for _, p := range pitches {
			track.Events = append(track.Events, model.TimedEvent{Kind: model.NoteOff, Pitch: p, ChordStart: start, Offset: pulses})
		}
		start += pulses
	}
	track.Length = start
	return track, nil
}

func NewSong(pulsesPerBeat int) model.Song {
	return model.Song{PulsesPerBeat: pulsesPerBeat}
}

// AppendTrack sequences progression and returns a copy of song with the
// result added as a new track. song itself is left as it was. Every track of
// a song shares one resolution and one tempo.
func AppendTrack(song model.Song, progression model.Progression, timing model.TimingConfig) (model.Song, error) {
	orig := song
	if song.PulsesPerBeat == 0 {
		song.PulsesPerBeat = timing.PulsesPerBeat
	}
	if timing.PulsesPerBeat != song.PulsesPerBeat {
		return orig, fmt.Errorf("%w: track resolution %d does not match song resolution %d",
			ErrInvalidTimingConfig, timing.PulsesPerBeat, song.PulsesPerBeat)
	}
	if len(song.Tracks) > 0 && song.Tracks[0].MicrosecondsPerBeat != timing.MicrosecondsPerBeat {
		return orig, fmt.Errorf("%w: track tempo %d does not match song tempo %d",
			ErrInvalidTimingConfig, timing.MicrosecondsPerBeat, song.Tracks[0].MicrosecondsPerBeat)
	}
	if err := Validate(timing); err != nil {
		return orig, err
	}

	track, err := SequenceDurations(progression, uniform(len(progression), timing.ChordDurationSeconds), timing)
	if err != nil {
		return orig, err
	}
	if len(progression) == 0 {
		track.PulsesPerChord = pulsesFor(timing.ChordDurationSeconds, timing)
	}

	tracks := make([]model.Track, 0, len(song.Tracks)+1)
	tracks = append(tracks, song.Tracks...)
	song.Tracks = append(tracks, track)
	return song, nil
}
