package model

type TimingConfig struct {
	PulsesPerBeat        int
	MicrosecondsPerBeat  int
	ChordDurationSeconds float64
}

// Track is a fully materialized, sequenced progression.
type Track struct {
	MicrosecondsPerBeat int
	PulsesPerChord      int
	Events              []TimedEvent
	// Length in pulses
	Length int
}

// Song accumulates tracks that share one resolution. Tracks play in parallel.
type Song struct {
	PulsesPerBeat int
	Tracks        []Track
}

// Seconds is the real-time length of the longest track.
func (s Song) Seconds() float64 {
	var longest float64
	for _, t := range s.Tracks {
		if s.PulsesPerBeat <= 0 {
			break
		}
		secs := float64(t.Length) / float64(s.PulsesPerBeat) * float64(t.MicrosecondsPerBeat) / 1e6
		if secs > longest {
			longest = secs
		}
	}
	return longest
}
