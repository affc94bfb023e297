package constants

import (
	"os"
	"strconv"
)

const (
	// a common sequencer default
	DefaultPulsesPerBeat = 480
	// 120 BPM
	DefaultMicrosecondsPerBeat = 500000
	DefaultChordDuration       = 2.0
	DefaultSampleRate          = 44100

	// 16 channels, we only ever write to the first
	Channel  = 0
	Velocity = 64
)

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func GetOutDir() string {
	return getEnv("OUT_DIR", "./out")
}

func GetSoundFontPath() string {
	return getEnv("SOUNDFONT_PATH", "FluidR3_GM.sf2")
}

func GetSynthPath() string {
	return getEnv("SYNTH_PATH", "fluidsynth")
}

// GetRenderer is either "fluidsynth" or "meltysynth".
func GetRenderer() string {
	return getEnv("RENDERER", "fluidsynth")
}

func GetSampleRate() int {
	rate, err := strconv.Atoi(getEnv("SAMPLE_RATE", ""))
	if err != nil || rate <= 0 {
		return DefaultSampleRate
	}
	return rate
}

func GetSentryDSN() string {
	return getEnv("SENTRY_DSN", "")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}
