// internal/services/notification_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
)

// NotificationService derives a feed from recent orders on every call.
// Nothing is persisted: the is_read flag on a notification is always false
// in the list view, and the unread count is recomputed independently.
//
// The count intentionally uses different filters per role than the list:
// the seller-side count ignores order status while the buyer-side count
// keeps the shipped/delivered filter. That asymmetry is inherited behavior
// kept on purpose, not an oversight.
type NotificationService struct {
	db *gorm.DB
}

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

const (
	notificationWindow = 7 * 24 * time.Hour
	notificationLimit  = 5
)

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListNotifications(actorID uuid.UUID) ([]Notification, error) {
	actor, err := loadUser(s.db, actorID)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-notificationWindow)
	notifications := []Notification{}

	// New-order events for sellers (and admins wearing a seller hat).
	if actor.HasAnyRole(models.RoleSeller, models.RoleAdmin, models.RoleRoot) {
		var orders []models.Order
		if err := s.db.
			Joins("JOIN products ON products.id = orders.product_id").
			Where("products.seller_id = ? AND orders.created_at >= ?", actor.ID, cutoff).
			Order("orders.created_at DESC").
			Limit(notificationLimit).
			Preload("Product").
			Find(&orders).Error; err != nil {
			return nil, apperrors.Internal(err)
		}

		for _, order := range orders {
			notifications = append(notifications, Notification{
				ID:        order.ID,
				Title:     "New order",
				Message:   fmt.Sprintf("Order %s for %s", order.ID, order.Product.Name),
				CreatedAt: order.CreatedAt,
				IsRead:    false,
			})
		}
	}

	// Status updates for buyers, only once the order is moving.
	if actor.Role == models.RoleUser {
		var orders []models.Order
		if err := s.db.
			Where("buyer_id = ? AND created_at >= ?", actor.ID, cutoff).
			Order("created_at DESC").
			Limit(notificationLimit).
			Find(&orders).Error; err != nil {
			return nil, apperrors.Internal(err)
		}

		for _, order := range orders {
			if order.Status == models.OrderStatusShipped || order.Status == models.OrderStatusDelivered {
				notifications = append(notifications, Notification{
					ID:        order.ID,
					Title:     "Order update",
					Message:   fmt.Sprintf("Order %s is now %s", order.ID, order.Status),
					CreatedAt: order.CreatedAt,
					IsRead:    false,
				})
			}
		}
	}

	return notifications, nil
}

func (s *NotificationService) CountUnread(actorID uuid.UUID) (int64, error) {
	actor, err := loadUser(s.db, actorID)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-notificationWindow)
	var count int64

	switch {
	case actor.HasAnyRole(models.RoleSeller, models.RoleAdmin, models.RoleRoot):
		// No status filter on the seller side, unlike the list view.
		if err := s.db.Model(&models.Order{}).
			Joins("JOIN products ON products.id = orders.product_id").
			Where("products.seller_id = ? AND orders.created_at >= ?", actor.ID, cutoff).
			Count(&count).Error; err != nil {
			return 0, apperrors.Internal(err)
		}
	case actor.Role == models.RoleUser:
		if err := s.db.Model(&models.Order{}).
			Where("buyer_id = ? AND status IN ? AND created_at >= ?",
				actor.ID, []models.OrderStatus{models.OrderStatusShipped, models.OrderStatusDelivered}, cutoff).
			Count(&count).Error; err != nil {
			return 0, apperrors.Internal(err)
		}
	}

	return count, nil
}
