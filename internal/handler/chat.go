package handler

import (
	"net/http"
	"strings"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/dto"
)

// Chatbot returns an AI assistant reply to the learner's message.
//
// POST /api/chatbot
func (h *Handler) Chatbot(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.ChatRequest
	decodeJSON(r, &req)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusOK, dto.ChatResponse{Response: "Please enter a message."})
		return
	}

	reply := h.chat.Reply(r.Context(), user, message)
	writeJSON(w, http.StatusOK, dto.ChatResponse{Response: reply})
}
