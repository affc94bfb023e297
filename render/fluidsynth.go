package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jsphweid/chordwav/logger"
)

// FluidSynth runs an external fluidsynth binary in fast-render mode.
type FluidSynth struct {
	Path string
}

func (f *FluidSynth) args(job Job, out string) []string {
	return []string{
		"-ni",
		job.SoundFont,
		job.MidiPath,
		"-F",
		out,
		"-r",
		strconv.Itoa(job.SampleRate),
	}
}

func (f *FluidSynth) Render(ctx context.Context, job Job) error {
	if err := checkJob("fluidsynth", job); err != nil {
		return err
	}

	tmp := tempPath(job.WavPath)
	defer os.Remove(tmp)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.Path, f.args(job, tmp)...)
	cmd.Stderr = &stderr

	logger.Debug("Running synth", logger.Fields{"path": f.Path, "args": strings.Join(cmd.Args[1:], " ")})
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &RenderError{
			Renderer: "fluidsynth",
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	if _, err := os.Stat(tmp); err != nil {
		return &RenderError{Renderer: "fluidsynth", ExitCode: 0, Err: errors.New("synth exited cleanly but wrote no audio")}
	}
	if err := os.Rename(tmp, job.WavPath); err != nil {
		return &RenderError{Renderer: "fluidsynth", ExitCode: 0, Err: err}
	}
	return nil
}
