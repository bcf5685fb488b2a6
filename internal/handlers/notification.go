// internal/handlers/notification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resalex/backend/internal/services"
	"github.com/resalex/backend/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GET /notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListNotifications(actorID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"notifications": notifications,
	})
}

// GET /notifications/unread-count
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(actorID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"unread_count": count,
	})
}
