package models

import (
	"errors"
	"time"
)

// ErrNotParticipant is returned when a user who is neither sender nor
// recipient attempts to act on a message.
var ErrNotParticipant = errors.New("user is not a participant of this message")

// MessageState is the lifecycle state of a message. Storage keeps the two
// deletion flags; the state makes the legal transitions explicit.
type MessageState int

const (
	// MessageActive means neither party has deleted the message.
	MessageActive MessageState = iota
	// MessageSenderDeleted means only the sender has deleted their side.
	MessageSenderDeleted
	// MessageRecipientDeleted means only the recipient has deleted their side.
	MessageRecipientDeleted
	// MessagePurged means both parties have deleted the message; the record
	// must be physically removed. Terminal.
	MessagePurged
)

// String returns a readable state name for logging.
func (s MessageState) String() string {
	switch s {
	case MessageActive:
		return "active"
	case MessageSenderDeleted:
		return "sender_deleted"
	case MessageRecipientDeleted:
		return "recipient_deleted"
	case MessagePurged:
		return "purged"
	default:
		return "unknown"
	}
}

// Message represents a direct message between two users. Each party may
// independently delete their own side; the record survives until both have.
type Message struct {
	ID                int64      `json:"id"`
	SenderID          int64      `json:"sender_id"`
	SenderUsername    string     `json:"sender_username"`
	RecipientID       int64      `json:"recipient_id"`
	RecipientUsername string     `json:"recipient_username"`
	Content           string     `json:"content"`
	SentAt            time.Time  `json:"sent_at"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
	SenderDeleted     bool       `json:"-"`
	RecipientDeleted  bool       `json:"-"`
}

// State derives the lifecycle state from the deletion flags.
func (m *Message) State() MessageState {
	switch {
	case m.SenderDeleted && m.RecipientDeleted:
		return MessagePurged
	case m.SenderDeleted:
		return MessageSenderDeleted
	case m.RecipientDeleted:
		return MessageRecipientDeleted
	default:
		return MessageActive
	}
}

// DeleteFor marks the given participant's side deleted and returns the
// resulting state. A user who is both sender and recipient takes the sender
// branch. Callers must purge the record when MessagePurged is returned.
func (m *Message) DeleteFor(userID int64) (MessageState, error) {
	switch userID {
	case m.SenderID:
		m.SenderDeleted = true
	case m.RecipientID:
		m.RecipientDeleted = true
	default:
		return m.State(), ErrNotParticipant
	}
	return m.State(), nil
}

// VisibleTo reports whether the given participant can still see the message,
// i.e. their own deletion flag is not set.
func (m *Message) VisibleTo(userID int64) bool {
	switch userID {
	case m.SenderID:
		return !m.SenderDeleted
	case m.RecipientID:
		return !m.RecipientDeleted
	default:
		return false
	}
}
