// internal/services/chat_service.go
package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
)

// ChatService handles the conversation attached to a single order. Only the
// order's buyer and seller talk; staff may read and may write, in which case
// their messages go to the buyer.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

func (s *ChatService) SendMessage(actorID, orderID uuid.UUID, body string) (*models.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.Validation("message cannot be empty")
	}

	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}

	if err := authorizeChatAccess(actor, order); err != nil {
		return nil, err
	}

	// The receiver is always the other transacting party. Staff who are
	// neither party address the buyer by convention.
	receiverID := order.BuyerID
	if actor.ID == order.BuyerID {
		receiverID = order.Product.SellerID
	}

	message := &models.ChatMessage{
		SenderID:   actor.ID,
		ReceiverID: receiverID,
		OrderID:    &order.ID,
		Body:       body,
	}

	if err := s.db.Create(message).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return message, nil
}

// ListMessages returns the conversation oldest-first and, deliberately, marks
// every message addressed to the actor as read in the same transaction: the
// read IS the acknowledgement. Callers that need a pure query don't exist in
// this domain.
func (s *ChatService) ListMessages(actorID, orderID uuid.UUID) ([]models.ChatMessage, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}

	if err := authorizeChatAccess(actor, order); err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).
			Order("created_at ASC").
			Preload("Sender").
			Find(&messages).Error; err != nil {
			return apperrors.Internal(err)
		}

		if err := tx.Model(&models.ChatMessage{}).
			Where("order_id = ? AND receiver_id = ? AND is_read = ?", order.ID, actor.ID, false).
			Update("is_read", true).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reflect the read-marking in the returned slice.
	for i := range messages {
		if messages[i].ReceiverID == actor.ID {
			messages[i].IsRead = true
		}
	}

	return messages, nil
}

func (s *ChatService) CountUnread(actorID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", actorID, false).
		Count(&count).Error; err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}

func authorizeChatAccess(actor *models.User, order *models.Order) error {
	if actor.ID == order.BuyerID || actor.ID == order.Product.SellerID || actor.IsStaff() {
		return nil
	}
	return apperrors.Permission("you cannot access this chat")
}
