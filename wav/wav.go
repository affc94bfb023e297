// Package wav writes and trims the uncompressed PCM files the renderers
// produce.
package wav

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var ErrNotWave = errors.New("not a RIFF/WAVE file")

const (
	pcm      = 1
	bitDepth = 16
)

type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
}

func (i Info) Seconds() float64 {
	if i.SampleRate <= 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

type decoded struct {
	buf         *audio.IntBuffer
	bitDepth    int
	audioFormat int
}

// decodeFile reads the whole file and closes it before returning, so the
// same path can be written afterwards.
func decodeFile(path string) (decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return decoded{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return decoded{}, fmt.Errorf("%s: %w", path, ErrNotWave)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return decoded{}, fmt.Errorf("%s: %w", path, err)
	}
	buf.Format = &audio.Format{NumChannels: int(d.NumChans), SampleRate: int(d.SampleRate)}
	return decoded{buf: buf, bitDepth: int(d.BitDepth), audioFormat: int(d.WavAudioFormat)}, nil
}

func Stat(path string) (Info, error) {
	d, err := decodeFile(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		SampleRate: d.buf.Format.SampleRate,
		Channels:   d.buf.Format.NumChannels,
		BitDepth:   d.bitDepth,
		Frames:     d.buf.NumFrames(),
	}, nil
}

// encodeFile writes buf beside path and renames it into place.
func encodeFile(path string, buf *audio.IntBuffer, bitDepth, audioFormat int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wav-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := wav.NewEncoder(tmp, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, audioFormat)
	if err := enc.Write(buf); err != nil {
		tmp.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func toInt16(v float32) int {
	f := math.Max(-1, math.Min(1, float64(v)))
	return int(math.Round(f * math.MaxInt16))
}

// WriteFile stores the two channels as interleaved 16-bit PCM. Samples
// outside [-1, 1] are clipped.
func WriteFile(path string, left, right []float32, sampleRate int) error {
	if len(left) != len(right) {
		return fmt.Errorf("channel length mismatch: %d left, %d right", len(left), len(right))
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	data := make([]int, 0, len(left)*2)
	for i := range left {
		data = append(data, toInt16(left[i]), toInt16(right[i]))
	}
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	return encodeFile(path, buf, bitDepth, pcm)
}

// Trim keeps the first floor(seconds * rate) frames of in and writes them to
// out, which may be the same path. It returns the number of frames kept.
// Files shorter than the target are copied whole.
func Trim(in, out string, seconds float64) (int, error) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("invalid trim length %v", seconds)
	}

	d, err := decodeFile(in)
	if err != nil {
		return 0, err
	}
	buf := d.buf
	channels := buf.Format.NumChannels
	if channels <= 0 {
		return 0, fmt.Errorf("%s: %w: no channels", in, ErrNotWave)
	}

	frames := buf.NumFrames()
	if target := seconds * float64(buf.Format.SampleRate); target < float64(frames) {
		frames = int(target)
	}
	buf.Data = buf.Data[:frames*channels]

	if err := encodeFile(out, buf, d.bitDepth, d.audioFormat); err != nil {
		return 0, fmt.Errorf("writing %s: %w", out, err)
	}
	return frames, nil
}
