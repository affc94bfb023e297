package model

type SequenceRequestBody struct {
	Chords []Chord `json:"chords"`
	// nil means the default, 0 is a valid zero-length chord
	Duration *float64 `json:"duration"`
	// nil means the default, 0 is rejected
	Tempo      *int `json:"tempo"`
	Resolution *int `json:"resolution"`
}

type SequenceResponse struct {
	PulsesPerBeat  int          `json:"pulses_per_beat"`
	PulsesPerChord int          `json:"pulses_per_chord"`
	Events         []TimedEvent `json:"events"`
}

type PresetResult struct {
	Index  int     `json:"index"`
	Label  string  `json:"label"`
	Chords []Chord `json:"chords"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
