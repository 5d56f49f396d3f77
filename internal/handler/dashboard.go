package handler

import (
	"net/http"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/dto"
)

// Dashboard returns the landing-page summary for the authenticated learner.
//
// GET /api/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	dash, err := h.progress.Dashboard(r.Context(), user)
	if err != nil {
		h.logger.Error("dashboard failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardResponse{
		CurrentCourse:      dash.CurrentCourse,
		CompletedCourses:   dash.CompletedCourses,
		Certifications:     dash.Certifications,
		OverallProgress:    dash.OverallProgress,
		RecommendedCourses: dto.NewCourseResponseList(dash.RecommendedCourses),
	})
}

// Performance returns the authenticated learner's tracked metrics with
// streak, quiz and completion stats folded in.
//
// GET /api/performance
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	report, err := h.progress.Performance(r.Context(), user)
	if err != nil {
		h.logger.Error("performance failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load performance data")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
