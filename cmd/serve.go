package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordwav/constants"
	"github.com/jsphweid/chordwav/logger"
	"github.com/jsphweid/chordwav/midi"
	"github.com/jsphweid/chordwav/model"
	"github.com/jsphweid/chordwav/preset"
	"github.com/jsphweid/chordwav/sequence"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// request bodies are chord lists, a megabyte is plenty
const maxBodyBytes = 1 << 20

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default $PORT)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the sequencer over HTTP",
	Long:  `Serves POST /sequence, POST /midi and GET /presets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := servePort
		if port == "" {
			port = constants.GetPort()
		}
		logger.Info("Starting server", logger.Fields{"port": port})
		return http.ListenAndServe(":"+port, NewHandler())
	},
}

func NewHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/sequence", HandleSequence).Methods("POST")
	router.HandleFunc("/midi", HandleMidi).Methods("POST")
	router.HandleFunc("/presets", HandlePresets).Methods("GET")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encoding response: %v", err)
	}
}

// readSequenceRequest fills absent timing fields with the CLI defaults.
// Fields that are present are kept as sent, zero included.
func readSequenceRequest(r *http.Request) (model.SequenceRequestBody, error) {
	var input model.SequenceRequestBody
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return input, err
	}
	if err := json.Unmarshal(reqBody, &input); err != nil {
		return input, fmt.Errorf("could not unmarshal request body: %w", err)
	}
	if input.Duration == nil {
		d := float64(constants.DefaultChordDuration)
		input.Duration = &d
	}
	if input.Tempo == nil {
		tempo := constants.DefaultMicrosecondsPerBeat
		input.Tempo = &tempo
	}
	if input.Resolution == nil {
		resolution := constants.DefaultPulsesPerBeat
		input.Resolution = &resolution
	}
	return input, nil
}

func timingOf(input model.SequenceRequestBody) model.TimingConfig {
	return model.TimingConfig{
		PulsesPerBeat:        *input.Resolution,
		MicrosecondsPerBeat:  *input.Tempo,
		ChordDurationSeconds: *input.Duration,
	}
}

func HandleSequence(w http.ResponseWriter, r *http.Request) {
	input, err := readSequenceRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	timing := timingOf(input)
	events, err := sequence.Sequence(input.Chords, timing)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pulses, _ := sequence.PulsesPerChord(timing)

	if events == nil {
		events = make([]model.TimedEvent, 0)
	}
	writeJSON(w, model.SequenceResponse{
		PulsesPerBeat:  timing.PulsesPerBeat,
		PulsesPerChord: pulses,
		Events:         events,
	})
}

func HandleMidi(w http.ResponseWriter, r *http.Request) {
	input, err := readSequenceRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	timing := timingOf(input)
	song, err := sequence.AppendTrack(sequence.NewSong(timing.PulsesPerBeat), input.Chords, timing)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	if err := midi.Write(&buf, song); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, midi.ErrPitchOutOfRange) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="progression.mid"`)
	w.Write(buf.Bytes())
}

func HandlePresets(w http.ResponseWriter, r *http.Request) {
	all := preset.All()
	res := make([]model.PresetResult, 0, len(all))
	for i, p := range all {
		res = append(res, model.PresetResult{Index: i, Label: p.Label, Chords: p.Progression})
	}
	writeJSON(w, res)
}
