package handler

import (
	"errors"
	"net/http"

	"github.com/umeshgupta05/SmartPathAI/internal/dto"
	"github.com/umeshgupta05/SmartPathAI/internal/service"
)

// Auth handles combined signup and login. The body's "signup" flag picks
// the flow, matching the single-page frontend's one auth form.
//
// POST /api/auth
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthRequest
	decodeJSON(r, &req)

	if req.Signup {
		h.signUp(w, r, req)
		return
	}
	h.login(w, r, req)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request, req dto.AuthRequest) {
	user, token, err := h.users.SignUp(r.Context(), service.SignUpInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Interests: req.Interests,
	})
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NewAuthResponse("Account created successfully", token, user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, req dto.AuthRequest) {
	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewAuthResponse("Login successful", token, user))
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, service.ErrInvalidEmail):
		writeMessage(w, http.StatusBadRequest, "Please provide a valid email address")
	case errors.Is(err, service.ErrNameTooShort):
		writeMessage(w, http.StatusBadRequest, "Name must be at least 2 characters")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		h.logger.Error("auth failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Authentication failed")
	}
}
