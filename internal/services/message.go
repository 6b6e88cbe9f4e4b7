package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"
)

// MessageRepo is the persistence interface the message service depends on.
type MessageRepo interface {
	Create(ctx context.Context, msg *models.Message) error
	ListForUser(ctx context.Context, userID int64) ([]*models.Message, error)
	Thread(ctx context.Context, userID, otherID int64) ([]*models.Message, error)
	MarkDeleted(ctx context.Context, messageID, userID int64) (models.MessageState, error)
}

// MessageService stores, retrieves and deletes direct messages. Deletion is
// per-party: each participant hides only their own side, and the record is
// purged once both sides are deleted.
type MessageService struct {
	messageRepo MessageRepo
	userRepo    UserRepo
	recorder    metrics.Recorder
	now         func() time.Time
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo MessageRepo, userRepo UserRepo, recorder metrics.Recorder) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		recorder:    recorder,
		now:         time.Now,
	}
}

// SendMessage creates a message from the acting user to the recipient.
// Content is stored as-is.
func (s *MessageService) SendMessage(ctx context.Context, actingUsername, recipientUsername, content string) (*models.Message, error) {
	sender, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return nil, err
	}
	recipient, err := s.resolveUser(ctx, recipientUsername)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:          sender.ID,
		SenderUsername:    sender.Username,
		RecipientID:       recipient.ID,
		RecipientUsername: recipient.Username,
		Content:           content,
		SentAt:            s.now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.recorder.RecordMessageSent()
	return msg, nil
}

// ListInbox returns all messages the acting user can still see, as sender or
// recipient, most recent first.
func (s *MessageService) ListInbox(ctx context.Context, actingUsername string) ([]*models.Message, error) {
	user, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// GetThread returns the conversation between the acting user and the other
// user in chronological order, filtered by the acting user's own deletion
// flag on each message.
func (s *MessageService) GetThread(ctx context.Context, actingUsername, otherUsername string) ([]*models.Message, error) {
	user, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return nil, err
	}
	other, err := s.resolveUser(ctx, otherUsername)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.Thread(ctx, user.ID, other.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}
	return messages, nil
}

// DeleteMessage marks the acting user's side of the message deleted and
// reports the resulting state. A message that does not exist, or that the
// acting user is neither sender nor recipient of, fails with ErrNotFound.
func (s *MessageService) DeleteMessage(ctx context.Context, actingUsername string, messageID int64) (models.MessageState, error) {
	user, err := s.resolveUser(ctx, actingUsername)
	if err != nil {
		return models.MessageActive, err
	}

	state, err := s.messageRepo.MarkDeleted(ctx, messageID, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return state, ErrNotFound
		}
		return state, fmt.Errorf("failed to delete message: %w", err)
	}

	if state == models.MessagePurged {
		s.recorder.RecordMessagePurged()
	}
	return state, nil
}

func (s *MessageService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
