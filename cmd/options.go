package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/chordwav/constants"
	"github.com/jsphweid/chordwav/logger"
	"github.com/jsphweid/chordwav/midi"
	"github.com/jsphweid/chordwav/model"
	"github.com/jsphweid/chordwav/render"
	"github.com/jsphweid/chordwav/util"
	"github.com/jsphweid/chordwav/wav"
	"github.com/spf13/cobra"
)

type timingOptions struct {
	duration   float64
	tempo      int
	resolution int
}

func (t *timingOptions) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&t.duration, "duration", "d", constants.DefaultChordDuration, "seconds per chord")
	cmd.Flags().IntVarP(&t.tempo, "tempo", "t", constants.DefaultMicrosecondsPerBeat, "microseconds per beat")
	cmd.Flags().IntVar(&t.resolution, "resolution", constants.DefaultPulsesPerBeat, "pulses per beat")
}

func (t timingOptions) config() model.TimingConfig {
	return model.TimingConfig{
		PulsesPerBeat:        t.resolution,
		MicrosecondsPerBeat:  t.tempo,
		ChordDurationSeconds: t.duration,
	}
}

// Empty values are filled from the environment once .env has been loaded.
type outputOptions struct {
	soundfont string
	midiPath  string
	wavPath   string
	renderer  string
	synthPath string
	rate      int
	trim      bool
	midiOnly  bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.soundfont, "soundfont", "", "SoundFont (.sf2) to render with (default $SOUNDFONT_PATH)")
	cmd.Flags().StringVar(&o.midiPath, "midi", "", "where to keep the track file (default: temporary file in $OUT_DIR)")
	cmd.Flags().StringVarP(&o.wavPath, "out", "o", "", "output WAV (default $OUT_DIR/progression.wav)")
	cmd.Flags().StringVar(&o.renderer, "renderer", "", "fluidsynth or meltysynth (default $RENDERER)")
	cmd.Flags().StringVar(&o.synthPath, "synth", "", "fluidsynth executable (default $SYNTH_PATH)")
	cmd.Flags().IntVarP(&o.rate, "rate", "r", 0, "output sample rate (default $SAMPLE_RATE)")
	cmd.Flags().BoolVar(&o.trim, "trim", false, "cut the rendered tail so the file loops exactly")
	cmd.Flags().BoolVar(&o.midiOnly, "midi-only", false, "write the track file and skip rendering")
}

func (o *outputOptions) fillDefaults() {
	if o.soundfont == "" {
		o.soundfont = constants.GetSoundFontPath()
	}
	if o.wavPath == "" {
		o.wavPath = filepath.Join(constants.GetOutDir(), "progression.wav")
	}
	if o.renderer == "" {
		o.renderer = constants.GetRenderer()
	}
	if o.synthPath == "" {
		o.synthPath = constants.GetSynthPath()
	}
	if o.rate <= 0 {
		o.rate = constants.GetSampleRate()
	}
}

// produce writes the song as a track file and, unless midiOnly, renders it.
func produce(ctx context.Context, out io.Writer, song model.Song, o outputOptions) error {
	o.fillDefaults()
	if err := util.EnsureDir(constants.GetOutDir()); err != nil {
		return err
	}

	midiPath := o.midiPath
	transient := midiPath == "" && !o.midiOnly
	if midiPath == "" {
		midiPath = filepath.Join(constants.GetOutDir(), uuid.New().String()+".mid")
	}
	if err := midi.WriteMidiFile(midiPath, song); err != nil {
		return err
	}
	if transient {
		defer os.Remove(midiPath)
	}
	logger.Info("Track file written", logger.Fields{"path": midiPath, "tracks": len(song.Tracks), "seconds": song.Seconds()})

	if o.midiOnly {
		fmt.Fprintf(out, "MIDI file saved as: %s\n", midiPath)
		return nil
	}

	r, err := render.New(o.renderer, o.synthPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Converting %s to %s using %s...\n", midiPath, o.wavPath, o.renderer)
	job := render.Job{SoundFont: o.soundfont, MidiPath: midiPath, WavPath: o.wavPath, SampleRate: o.rate}
	if err := r.Render(ctx, job); err != nil {
		logger.Error("Render failed", err, logger.Fields{"renderer": o.renderer, "soundfont": o.soundfont})
		return err
	}

	info, err := wav.Stat(o.wavPath)
	if err != nil {
		logger.Warn("Could not read rendered audio", logger.Fields{"path": o.wavPath, "error": err.Error()})
	} else {
		logger.Info("Rendered", logger.Fields{"path": o.wavPath, "seconds": info.Seconds(), "rate": info.SampleRate})
	}

	if o.trim {
		frames, err := wav.Trim(o.wavPath, o.wavPath, song.Seconds())
		if err != nil {
			return err
		}
		logger.Info("Trimmed for looping", logger.Fields{"path": o.wavPath, "frames": frames})
	}
	fmt.Fprintf(out, "WAV file saved as: %s\n", o.wavPath)
	return nil
}
