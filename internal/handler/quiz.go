package handler

import (
	"net/http"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/dto"
)

// GenerateQuiz returns a fresh quiz about the learner's current course.
// Generation failures return an empty quiz so the UI can offer a retry.
//
// GET /api/generate_quiz
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	quiz := h.quizzes.Generate(r.Context(), user)
	writeJSON(w, http.StatusOK, quiz)
}

// CheckAnswers grades a submitted quiz and records the attempt.
//
// POST /api/check_answers
func (h *Handler) CheckAnswers(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CheckAnswersRequest
	decodeJSON(r, &req)

	score, err := h.quizzes.Grade(r.Context(), user, req.Answers, req.CorrectAnswers)
	if err != nil {
		h.logger.Error("quiz grading failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to grade quiz")
		return
	}

	writeJSON(w, http.StatusOK, dto.ScoreResponse{Score: score})
}
