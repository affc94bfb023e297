package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jsphweid/chordwav/util"
	"github.com/jsphweid/chordwav/wav"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

const (
	defaultBlockSize = 1024
	// render past the last note-off so releases and reverb decay
	releaseTail = time.Second
)

// MeltySynth renders in process with a SoundFont synthesizer. It is offline
// rendering: the whole file is synthesized as fast as possible.
type MeltySynth struct {
	BlockSize int
}

func (m *MeltySynth) fail(err error) error {
	return &RenderError{Renderer: "meltysynth", ExitCode: -1, Err: err}
}

func (m *MeltySynth) Render(ctx context.Context, job Job) error {
	if err := checkJob("meltysynth", job); err != nil {
		return err
	}

	sfData, err := os.ReadFile(job.SoundFont)
	if err != nil {
		return m.fail(err)
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(sfData))
	if err != nil {
		return m.fail(fmt.Errorf("soundfont: %w", err))
	}

	blockSize := m.BlockSize
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	settings := meltysynth.NewSynthesizerSettings(int32(job.SampleRate))
	settings.BlockSize = int32(blockSize)
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return m.fail(err)
	}

	midiData, err := os.ReadFile(job.MidiPath)
	if err != nil {
		return m.fail(err)
	}
	mf, err := meltysynth.NewMidiFile(bytes.NewReader(midiData))
	if err != nil {
		return m.fail(fmt.Errorf("track file: %w", err))
	}

	seq := meltysynth.NewMidiFileSequencer(synth)
	seq.Play(mf, false)

	length := mf.GetLength() + releaseTail
	frames := int(length.Seconds() * float64(job.SampleRate))
	left := make([]float32, frames)
	right := make([]float32, frames)
	for start := 0; start < frames; start += blockSize {
		if err := ctx.Err(); err != nil {
			return m.fail(err)
		}
		end := util.Min(start+blockSize, frames)
		seq.Render(left[start:end], right[start:end])
	}

	if err := wav.WriteFile(job.WavPath, left, right, job.SampleRate); err != nil {
		return m.fail(err)
	}
	return nil
}
