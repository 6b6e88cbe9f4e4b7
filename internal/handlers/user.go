package handlers

import (
	"encoding/json"
	"net/http"

	"dating-backend/internal/middleware"
	"dating-backend/internal/models"
	"dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListMembers handles GET /api/v1/users
func (h *UserHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.userService.ListMembers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list members")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, members)
}

// UpdateProfile handles PUT /api/v1/users
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdateProfile(ctx, username, &update); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to update profile")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
