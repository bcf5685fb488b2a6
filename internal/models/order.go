// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	BuyerID   uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	// TotalAmount snapshots the product price at purchase time and never
	// tracks later price edits.
	TotalAmount     float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty" gorm:"size:200"`
	TrackingNumber  string      `json:"tracking_number,omitempty" gorm:"size:100"`

	// Relationships
	Buyer   User    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// orderTransitions is the fulfillment state machine. Progression is forward
// only; `paid` is reachable solely through payment confirmation, and any
// active order can be cancelled. Delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// FulfillmentTargets are the only statuses accepted by the seller/staff
// transition endpoint. Anything else is ignored.
var FulfillmentTargets = []OrderStatus{OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

func FulfillmentTarget(s OrderStatus) bool {
	for _, t := range FulfillmentTargets {
		if t == s {
			return true
		}
	}
	return false
}
