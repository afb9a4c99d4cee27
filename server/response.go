package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/internal/mylog"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errors.ErrInvalidParams), errors.Is(err, errors.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write response", mylog.Err(err))
	}
}

// writeError hides the cause of internal failures from the client.
func writeError(logger *slog.Logger, w http.ResponseWriter, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", mylog.Err(err))
		msg = http.StatusText(status)
	}
	writeJSON(logger, w, status, errorResponse{Error: msg})
}
