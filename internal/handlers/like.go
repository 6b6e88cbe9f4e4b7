package handlers

import (
	"net/http"

	"dating-backend/internal/middleware"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// LikeHandler handles like-related HTTP requests
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ListLikes handles GET /api/v1/likes
func (h *LikeHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	liked, err := h.likeService.ListLikedUsers(ctx, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to list likes")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, liked)
}

// AddLike handles POST /api/v1/likes/{username}
func (h *LikeHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)
	target := chi.URLParam(r, "username")

	if err := h.likeService.AddLike(ctx, username, target); err != nil {
		log.Error().
			Err(err).
			Str("username", username).
			Str("target", target).
			Msg("Failed to add like")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	log.Info().
		Str("username", username).
		Str("target", target).
		Msg("Like added")

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
