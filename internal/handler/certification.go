package handler

import (
	"errors"
	"net/http"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/dto"
	"github.com/umeshgupta05/SmartPathAI/internal/service"
)

// RecommendCertifications returns AI-generated certification suggestions for
// the authenticated learner's interests.
//
// GET /api/recommend_certifications
func (h *Handler) RecommendCertifications(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	certs, err := h.recs.RecommendCertifications(r.Context(), user.Interests())
	if err != nil {
		h.logger.Error("certification recommendation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load certifications")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewCertificationResponseList(certs))
}

// EarnedCertifications returns the names of certifications the learner has
// earned.
//
// GET /api/earned_certifications
func (h *Handler) EarnedCertifications(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	writeJSON(w, http.StatusOK, user.EarnedCertifications())
}

// MarkCertificationCompleted records a certification as earned.
//
// POST /api/mark_certification_completed
func (h *Handler) MarkCertificationCompleted(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.MarkCertificationRequest
	decodeJSON(r, &req)

	if err := h.progress.MarkCertificationEarned(r.Context(), user, req.Title); err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			writeMessage(w, http.StatusBadRequest, "title is required")
			return
		}
		h.logger.Error("mark certification failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to mark certification as completed")
		return
	}

	writeMessage(w, http.StatusOK, "Certification marked as completed")
}
