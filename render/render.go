// Package render turns a track file into audio.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrRenderFailure = errors.New("render failure")

type Job struct {
	SoundFont  string
	MidiPath   string
	WavPath    string
	SampleRate int
}

type Renderer interface {
	Render(ctx context.Context, job Job) error
}

// RenderError is returned for every failed render. ExitCode is -1 when no
// process ran or it could not be started.
type RenderError struct {
	Renderer string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Renderer, ErrRenderFailure)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailure
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func New(name, synthPath string) (Renderer, error) {
	switch name {
	case "fluidsynth":
		return &FluidSynth{Path: synthPath}, nil
	case "meltysynth":
		return &MeltySynth{}, nil
	}
	return nil, fmt.Errorf("unknown renderer %q (want fluidsynth or meltysynth)", name)
}

func checkJob(renderer string, job Job) error {
	if job.SampleRate <= 0 {
		return &RenderError{Renderer: renderer, ExitCode: -1, Err: fmt.Errorf("sample rate must be positive, got %d", job.SampleRate)}
	}
	if _, err := os.Stat(job.SoundFont); err != nil {
		return &RenderError{Renderer: renderer, ExitCode: -1, Err: fmt.Errorf("soundfont: %w", err)}
	}
	if _, err := os.Stat(job.MidiPath); err != nil {
		return &RenderError{Renderer: renderer, ExitCode: -1, Err: fmt.Errorf("track file: %w", err)}
	}
	return nil
}

// tempPath sits beside target so the final rename stays on one filesystem.
func tempPath(target string) string {
	return filepath.Join(filepath.Dir(target), "."+uuid.New().String()+".wav")
}
