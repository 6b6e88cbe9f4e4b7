package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dating-backend/internal/middleware"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MessageHandler handles message-related HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	RecipientUsername string `json:"recipient_username"`
	Content           string `json:"content"`
}

// ListInbox handles GET /api/v1/messages
func (h *MessageHandler) ListInbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	messages, err := h.messageService.ListInbox(ctx, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to list inbox")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

// GetThread handles GET /api/v1/messages/thread/{username}
func (h *MessageHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)
	other := chi.URLParam(r, "username")

	messages, err := h.messageService.GetThread(ctx, username, other)
	if err != nil {
		log.Error().
			Err(err).
			Str("username", username).
			Str("other", other).
			Msg("Failed to get thread")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

// SendMessage handles POST /api/v1/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.RecipientUsername == "" {
		respondError(w, "recipient_username is required", http.StatusBadRequest)
		return
	}

	msg, err := h.messageService.SendMessage(ctx, username, req.RecipientUsername, req.Content)
	if err != nil {
		log.Error().
			Err(err).
			Str("username", username).
			Str("recipient", req.RecipientUsername).
			Msg("Failed to send message")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	log.Info().
		Int64("message_id", msg.ID).
		Str("sender", msg.SenderUsername).
		Str("recipient", msg.RecipientUsername).
		Msg("Message sent")

	respondJSON(w, http.StatusCreated, msg)
}

// DeleteMessage handles DELETE /api/v1/messages/{id}
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid message id", http.StatusBadRequest)
		return
	}

	state, err := h.messageService.DeleteMessage(ctx, username, id)
	if err != nil {
		log.Error().
			Err(err).
			Str("username", username).
			Int64("message_id", id).
			Msg("Failed to delete message")
		respondError(w, clientMessage(err), statusForError(err))
		return
	}

	log.Info().
		Str("username", username).
		Int64("message_id", id).
		Stringer("state", state).
		Msg("Message deleted")

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
