package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ConversationID derives the deterministic identifier for the conversation
// between two users. The identifier is independent of who initiates:
// ConversationID(a, b) == ConversationID(b, a).
func ConversationID(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d_%d", a, b)
}

// ConversationHasParticipant reports whether the user is one of the two
// parties encoded in the conversation identifier. Malformed identifiers
// never match.
func ConversationHasParticipant(conversationID string, userID uint) bool {
	parts := strings.SplitN(conversationID, "_", 2)
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return false
		}
		if uint(id) == userID {
			return true
		}
	}
	return false
}

// Message is a direct message between two users. Immutable once created
// except for the read flag. ItemID optionally links the message to the
// listing it was sent about and is cleared if that item is deleted.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	Sender         *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID     uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver       *User     `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	ItemID         *uint     `json:"item_id,omitempty"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationSummary is the last-message preview entry returned by the
// conversation list: one entry per distinct counterpart.
type ConversationSummary struct {
	ConversationID string  `json:"conversation_id"`
	OtherUser      User    `json:"other_user"`
	LastMessage    Message `json:"last_message"`
	UnreadCount    int     `json:"unread_count"`
}
