package handler

import (
	"net/http"

	"github.com/umeshgupta05/SmartPathAI/internal/auth"
	"github.com/umeshgupta05/SmartPathAI/internal/dto"
	"github.com/umeshgupta05/SmartPathAI/internal/model"
	"github.com/umeshgupta05/SmartPathAI/internal/service"
)

// GetProfile returns the authenticated learner's profile.
//
// GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		Name:        user.Name,
		Email:       user.Email,
		Interests:   user.Interests(),
		Preferences: user.Preferences(),
	})
}

// UpdateProfile applies changes to the authenticated learner's profile.
//
// PUT /api/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.UpdateProfileRequest
	decodeJSON(r, &req)

	input := service.UpdateProfileInput{
		Name:      req.Name,
		Interests: req.Interests,
	}
	if req.Preferences != nil {
		input.Preferences = &model.Preferences{
			Pace:          req.Preferences.Pace,
			ContentFormat: req.Preferences.ContentFormat,
		}
	}

	if err := h.users.UpdateProfile(r.Context(), user, input); err != nil {
		h.logger.Error("profile update failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeMessage(w, http.StatusOK, "Profile updated successfully")
}
