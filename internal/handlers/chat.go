// internal/handlers/chat.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resalex/backend/internal/i18n"
	"github.com/resalex/backend/internal/services"
	"github.com/resalex/backend/internal/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// POST /orders/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	message, err := h.chatService.SendMessage(actorID, orderID, req.Body)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChatMessageSent),
		"data":    message,
	})
}

// GET /orders/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(actorID, orderID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"messages": messages,
	})
}

// GET /chat/unread-count
func (h *ChatHandler) CountUnread(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.chatService.CountUnread(actorID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"unread_count": count,
	})
}
