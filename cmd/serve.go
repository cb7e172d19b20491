package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/abcplay/constants"
	"github.com/jsphweid/abcplay/midi"
	"github.com/jsphweid/abcplay/model"
	"github.com/jsphweid/abcplay/render"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// tunes are small; anything larger is rejected
const maxBodyBytes = 1 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the parser and renderer over HTTP",
	Long: `Serves two endpoints that take a tune in the request body:

  POST /parse   returns the header, timing and note events as JSON
  POST /render  returns the tune as a standard MIDI file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler := cors.Default().Handler(NewRouter())
		slog.Info("listening", "addr", cfg.HTTPAddr)
		return http.ListenAndServe(cfg.HTTPAddr, handler)
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", HandleParse).Methods(http.MethodPost)
	router.HandleFunc("/render", HandleRender).Methods(http.MethodPost)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)
	return router
}

func HandleParse(w http.ResponseWriter, r *http.Request) {
	src, ok := readTune(w, r)
	if !ok {
		return
	}
	res, err := render.Summary(src, ticksPerUnit())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	src, ok := readTune(w, r)
	if !ok {
		return
	}
	res, err := render.Tune(src, render.Options{TicksPerUnit: ticksPerUnit()})
	if err != nil {
		writeError(w, err)
		return
	}
	dat, err := midi.Encode(res.SMF)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "tune-"+res.Piece.ID+constants.MidiExtension))
	if _, err := w.Write(dat); err != nil {
		slog.Warn("failed to write response", "err", err)
	}
}

func ticksPerUnit() int {
	if cfg == nil || cfg.TicksPerUnit == 0 {
		return constants.DefaultTicksPerUnit
	}
	return cfg.TicksPerUnit
}

func readTune(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: err.Error(), Offset: -1})
		return "", false
	}
	return string(body), true
}

// writeError reports tune errors as 400 with their kind and offset. Anything
// else is ours.
func writeError(w http.ResponseWriter, err error) {
	var tuneErr *model.Error
	if !errors.As(err, &tuneErr) {
		slog.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error(), Offset: -1})
		return
	}
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:  tuneErr.Error(),
		Kind:   tuneErr.Kind.String(),
		Offset: tuneErr.Offset,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}
