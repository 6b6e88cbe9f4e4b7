package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"dating-backend/internal/middleware"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
	maxBytes     int64
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService, maxBytes int64) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		maxBytes:     maxBytes,
	}
}

// ListPhotos handles GET /api/v1/photos
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	photos, err := h.photoService.ListPhotos(ctx, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to list photos")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

// AddPhoto handles POST /api/v1/photos/add-photo (multipart form, field "file")
func (h *PhotoHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.AddPhoto(ctx, username, data, filepath.Ext(header.Filename))
	if err != nil {
		log.Error().
			Err(err).
			Str("username", username).
			Str("filename", header.Filename).
			Msg("Failed to add photo")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	log.Info().
		Str("username", username).
		Int64("photo_id", photo.ID).
		Bool("is_main", photo.IsMain).
		Msg("Photo added")

	respondJSON(w, http.StatusCreated, photo)
}

// SetMainPhoto handles PUT /api/v1/photos/set-main-photo/{id}
func (h *PhotoHandler) SetMainPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	if err := h.photoService.SetMainPhoto(ctx, username, id); err != nil {
		log.Error().
			Err(err).
			Str("username", username).
			Int64("photo_id", id).
			Msg("Failed to set main photo")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePhoto handles DELETE /api/v1/photos/delete-photo/{id}
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	if err := h.photoService.DeletePhoto(ctx, username, id); err != nil {
		log.Error().
			Err(err).
			Str("username", username).
			Int64("photo_id", id).
			Msg("Failed to delete photo")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
