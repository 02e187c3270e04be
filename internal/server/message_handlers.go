package server

import (
	"cityshare/internal/models"
	"cityshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID uint   `json:"receiver_id"`
		ItemID     *uint  `json:"item_id"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("receiver_id is required"))
	}

	message, err := s.messageService.SendMessage(c.Context(), service.SendMessageInput{
		SenderID:   currentUserID(c),
		ReceiverID: req.ReceiverID,
		ItemID:     req.ItemID,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversations handles GET /api/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.messageService.ListConversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(conversations)
}

// GetConversationMessages handles GET /api/messages/:conversationId
func (s *Server) GetConversationMessages(c *fiber.Ctx) error {
	conversationID := c.Params("conversationId")
	if conversationID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid conversation ID"))
	}

	messages, err := s.messageService.GetConversation(c.Context(), currentUserID(c), conversationID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(messages)
}

// MarkConversationRead handles POST /api/conversations/:conversationId/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	conversationID := c.Params("conversationId")
	if conversationID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid conversation ID"))
	}

	if err := s.messageService.MarkConversationRead(c.Context(), currentUserID(c), conversationID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Conversation marked read"})
}
