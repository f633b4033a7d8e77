// Package http provides HTTP handlers that let players submit attempts
// and read challenge statistics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/flaggate/internal/models"
	"github.com/atinyakov/flaggate/internal/service"
)

// AttemptService defines the operations required by the handlers.
type AttemptService interface {
	// Check validates input against the named challenge and records it.
	Check(ctx context.Context, name, remote string, input []byte) (service.Result, error)
	// Stats aggregates the attempts of the named challenge.
	Stats(ctx context.Context, name string) (models.Stats, error)
}

// AttemptHandler serves attempt submission and statistics.
type AttemptHandler struct {
	// AttemptService performs validation and bookkeeping.
	AttemptService AttemptService
	// Logger reports failures that are hidden from players.
	Logger *zap.Logger
}

// AttemptRequest is the JSON body of an attempt.
type AttemptRequest struct {
	// Input is the line the player would type, without its terminator.
	Input string `json:"input"`
}

// AttemptResponse is the JSON reply to an attempt.
type AttemptResponse struct {
	ID       string `json:"id"`
	Accepted bool   `json:"accepted"`
	Flag     string `json:"flag,omitempty"`
	Message  string `json:"message,omitempty"`
}

const rejectMessage = "incorrect input"

// Attempt handles POST /api/challenges/{name}/attempts.
// It answers 200 with the flag when the input is accepted, 403 when it is
// rejected, 404 for unknown challenges and 400 for malformed bodies.
func (h *AttemptHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req AttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.AttemptService.Check(r.Context(), name, r.RemoteAddr, []byte(req.Input))
	if err != nil {
		if errors.Is(err, service.ErrUnknownChallenge) {
			http.Error(w, "challenge not found", http.StatusNotFound)
			return
		}
		h.logger().Error("attempt failed", zap.String("challenge", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := AttemptResponse{
		ID:       res.Attempt.ID.String(),
		Accepted: res.Attempt.Accepted,
		Flag:     res.Flag,
	}
	status := http.StatusOK
	if !resp.Accepted {
		resp.Message = rejectMessage
		status = http.StatusForbidden
	}
	writeJSON(w, status, resp)
}

// Stats handles GET /api/challenges/{name}/stats.
func (h *AttemptHandler) Stats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	st, err := h.AttemptService.Stats(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownChallenge) {
			http.Error(w, "challenge not found", http.StatusNotFound)
			return
		}
		h.logger().Error("stats failed", zap.String("challenge", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *AttemptHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
