package repository

import (
	"context"
	"errors"
	"fmt"

	"dating-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository handles database operations for messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `m.id, m.sender_id, s.username, m.recipient_id, r.username,
		m.content, m.sent_at, m.read_at, m.sender_deleted, m.recipient_deleted`

const messageJoins = `
		FROM messages m
		JOIN users s ON s.id = m.sender_id
		JOIN users r ON r.id = m.recipient_id`

func scanMessage(row pgx.Row) (*models.Message, error) {
	var msg models.Message
	err := row.Scan(
		&msg.ID, &msg.SenderID, &msg.SenderUsername,
		&msg.RecipientID, &msg.RecipientUsername,
		&msg.Content, &msg.SentAt, &msg.ReadAt,
		&msg.SenderDeleted, &msg.RecipientDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan message: %w", err)
	}
	return &msg, nil
}

// Create inserts a message and fills in its generated ID.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (sender_id, recipient_id, content, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		msg.SenderID, msg.RecipientID, msg.Content, msg.SentAt,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListForUser retrieves all messages the user can still see, as sender or
// recipient, most recent first.
func (r *MessageRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	query := `
		SELECT ` + messageColumns + messageJoins + `
		WHERE (m.recipient_id = $1 AND NOT m.recipient_deleted)
		   OR (m.sender_id = $1 AND NOT m.sender_deleted)
		ORDER BY m.sent_at DESC
	`
	return r.queryMessages(ctx, query, userID)
}

// Thread retrieves the messages between two users, each row filtered by the
// viewing user's own deletion flag, in chronological order.
func (r *MessageRepository) Thread(ctx context.Context, userID, otherID int64) ([]*models.Message, error) {
	query := `
		SELECT ` + messageColumns + messageJoins + `
		WHERE (m.sender_id = $1 AND m.recipient_id = $2 AND NOT m.sender_deleted)
		   OR (m.sender_id = $2 AND m.recipient_id = $1 AND NOT m.recipient_deleted)
		ORDER BY m.sent_at ASC
	`
	return r.queryMessages(ctx, query, userID, otherID)
}

func (r *MessageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]*models.Message, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// MarkDeleted marks the acting participant's side of the message deleted and
// purges the row once both sides are deleted. The read, the flag update and
// the conditional purge run in one transaction; the row is locked for the
// duration so two concurrent deletes cannot both miss the purge. Returns
// ErrNotFound when the message does not exist or the user is not a
// participant, hiding its existence from unrelated callers.
func (r *MessageRepository) MarkDeleted(ctx context.Context, messageID, userID int64) (models.MessageState, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.MessageActive, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT id, sender_id, recipient_id, sender_deleted, recipient_deleted
		FROM messages
		WHERE id = $1 AND (sender_id = $2 OR recipient_id = $2)
		FOR UPDATE
	`
	var msg models.Message
	err = tx.QueryRow(ctx, query, messageID, userID).Scan(
		&msg.ID, &msg.SenderID, &msg.RecipientID,
		&msg.SenderDeleted, &msg.RecipientDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MessageActive, ErrNotFound
		}
		return models.MessageActive, fmt.Errorf("failed to get message: %w", err)
	}

	state, err := msg.DeleteFor(userID)
	if err != nil {
		return state, ErrNotFound
	}

	if state == models.MessagePurged {
		if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE id = $1`, msg.ID); err != nil {
			return state, fmt.Errorf("failed to purge message: %w", err)
		}
	} else {
		updateQuery := `
			UPDATE messages
			SET sender_deleted = $1, recipient_deleted = $2
			WHERE id = $3
		`
		if _, err := tx.Exec(ctx, updateQuery, msg.SenderDeleted, msg.RecipientDeleted, msg.ID); err != nil {
			return state, fmt.Errorf("failed to update message flags: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return state, fmt.Errorf("failed to commit message delete: %w", err)
	}

	return state, nil
}
