package handler

import (
	"errors"
	"net/http"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/dto"
	"github.com/umeshgupta05/SmartPathAI/internal/service"
)

// RecommendCourses returns AI-generated course recommendations for the
// authenticated learner's interests.
//
// GET /api/recommend_courses
func (h *Handler) RecommendCourses(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	courses, err := h.recs.RecommendCourses(r.Context(), user.Interests())
	if err != nil {
		h.logger.Error("course recommendation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load courses")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewCourseResponseList(courses))
}

// UserProgress returns the titles of courses the learner has completed.
//
// GET /api/user_progress
func (h *Handler) UserProgress(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	writeJSON(w, http.StatusOK, dto.UserProgressResponse{
		CompletedCourses: user.CompletedCourses(),
	})
}

// MarkCompleted records a course as finished for the learner.
//
// POST /api/mark_completed
func (h *Handler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.MarkCompletedRequest
	decodeJSON(r, &req)

	if err := h.progress.MarkCompleted(r.Context(), user, req.CourseTitle); err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			writeMessage(w, http.StatusBadRequest, "courseTitle is required")
			return
		}
		h.logger.Error("mark completed failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to mark course as completed")
		return
	}

	writeMessage(w, http.StatusOK, "Course marked as completed")
}

// LearningPath returns every stored course with the learner's completion
// status and overall path stats.
//
// GET /api/learning_path
func (h *Handler) LearningPath(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	path, err := h.progress.LearningPath(r.Context(), user)
	if err != nil {
		h.logger.Error("learning path failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load learning path")
		return
	}

	writeJSON(w, http.StatusOK, path)
}
