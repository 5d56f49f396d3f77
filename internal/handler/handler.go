// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/umeshgupta05/SmartPathAI/internal/dto"
	"github.com/umeshgupta05/SmartPathAI/internal/service"
)

// Handler wraps application dependencies for HTTP handlers.
type Handler struct {
	users    *service.UserService
	recs     *service.RecommendationService
	progress *service.ProgressService
	quizzes  *service.QuizService
	chat     *service.ChatService
	logger   *slog.Logger
}

// New creates a new Handler instance.
func New(users *service.UserService, recs *service.RecommendationService, progress *service.ProgressService, quizzes *service.QuizService, chat *service.ChatService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		users:    users,
		recs:     recs,
		progress: progress,
		quizzes:  quizzes,
		chat:     chat,
		logger:   logger,
	}
}

// Hello is the root endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "SmartPathAI backend is running")
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response is already partially written; nothing to do.
		_ = err
	}
}

// writeMessage writes the uniform {"message": ...} envelope used for both
// status and error responses.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.MessageResponse{Message: message})
}

// decodeJSON decodes a request body, tolerating an empty body the way the
// API always has: absent fields just take their zero values.
func decodeJSON(r *http.Request, dst any) {
	if r.Body == nil {
		return
	}
	_ = json.NewDecoder(r.Body).Decode(dst)
}
