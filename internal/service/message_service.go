package service

import (
	"context"
	"strings"

	"cityshare/internal/models"
	"cityshare/internal/repository"
)

// Pusher delivers a payload to a connected user. Delivery is best effort;
// the return value only reports whether a connection accepted the frame.
type Pusher interface {
	Push(userID uint, payload interface{}) bool
}

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	pusher      Pusher
}

type SendMessageInput struct {
	SenderID   uint
	ReceiverID uint
	ItemID     *uint
	Content    string
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, pusher Pusher) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, pusher: pusher}
}

// wsEnvelope is the frame pushed over the live channel.
type wsEnvelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if in.SenderID == in.ReceiverID {
		return nil, models.NewValidationError("You cannot message yourself")
	}
	receiver, err := s.userRepo.GetByID(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   in.SenderID,
		ReceiverID: receiver.ID,
		ItemID:     in.ItemID,
		Content:    in.Content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Live delivery never gates the request.
	if s.pusher != nil {
		s.pusher.Push(receiver.ID, wsEnvelope{Type: "message", Data: message})
	}
	return message, nil
}

// GetConversation returns the full history of one conversation, oldest first.
// Only the two participants encoded in the conversation ID may read it.
func (s *MessageService) GetConversation(ctx context.Context, userID uint, conversationID string) ([]models.Message, error) {
	if !models.ConversationHasParticipant(conversationID, userID) {
		return nil, models.NewForbiddenError("You are not part of this conversation")
	}
	return s.messageRepo.ListByConversation(ctx, conversationID)
}

func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	return s.messageRepo.ListConversations(ctx, userID)
}

func (s *MessageService) MarkConversationRead(ctx context.Context, userID uint, conversationID string) error {
	if !models.ConversationHasParticipant(conversationID, userID) {
		return models.NewForbiddenError("You are not part of this conversation")
	}
	return s.messageRepo.MarkConversationRead(ctx, conversationID, userID)
}
