package repository

import (
	"context"

	"cityshare/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error)
	MarkConversationRead(ctx context.Context, conversationID string, readerID uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	message.ConversationID = models.ConversationID(message.SenderID, message.ReceiverID)
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	// Reload with the sender attached so the caller can push a complete frame.
	if err := r.db.WithContext(ctx).Preload("Sender").First(message, message.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// ListConversations builds one summary per counterpart: the latest message,
// the other user, and how many of their messages the caller has not read.
func (r *messageRepository) ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(messages) == 0 {
		return []models.ConversationSummary{}, nil
	}

	// Messages arrive newest first, so the first one seen per conversation
	// is its last message.
	lastByConv := make(map[string]models.Message)
	var order []string
	for _, m := range messages {
		if _, seen := lastByConv[m.ConversationID]; !seen {
			lastByConv[m.ConversationID] = m
			order = append(order, m.ConversationID)
		}
	}

	type unreadRow struct {
		ConversationID string
		Count          int
	}
	var unreadRows []unreadRow
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Select("conversation_id, COUNT(*) AS count").
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Group("conversation_id").
		Scan(&unreadRows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	unreadByConv := make(map[string]int, len(unreadRows))
	for _, row := range unreadRows {
		unreadByConv[row.ConversationID] = row.Count
	}

	otherIDs := make([]uint, 0, len(order))
	for _, conv := range order {
		m := lastByConv[conv]
		if m.SenderID == userID {
			otherIDs = append(otherIDs, m.ReceiverID)
		} else {
			otherIDs = append(otherIDs, m.SenderID)
		}
	}
	var others []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", otherIDs).Find(&others).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	otherByID := make(map[uint]models.User, len(others))
	for _, u := range others {
		otherByID[u.ID] = u
	}

	summaries := make([]models.ConversationSummary, 0, len(order))
	for _, conv := range order {
		m := lastByConv[conv]
		otherID := m.SenderID
		if otherID == userID {
			otherID = m.ReceiverID
		}
		other, ok := otherByID[otherID]
		if !ok {
			// Counterpart row is gone; skip rather than fabricate.
			continue
		}
		summaries = append(summaries, models.ConversationSummary{
			ConversationID: conv,
			OtherUser:      other,
			LastMessage:    m,
			UnreadCount:    unreadByConv[conv],
		})
	}
	return summaries, nil
}

func (r *messageRepository) MarkConversationRead(ctx context.Context, conversationID string, readerID uint) error {
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
