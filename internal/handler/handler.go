package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mtlprog/statuscron/internal/handler/dto"
)

// IndexBody is the plain text body served at the root path.
const IndexBody = "Hello World!"

// Handler serves the status endpoints.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// {$} keeps "/" from matching every path
	mux.HandleFunc("GET /{$}", h.handleIndex)

	// Probes
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ready", h.handleReady)
}

// Routes returns a mux with all routes registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(IndexBody)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// handleHealth is the liveness probe.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.StatusResponse{Status: dto.StatusOK})
}

// handleReady is the readiness probe.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.StatusResponse{Status: dto.StatusReady})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
