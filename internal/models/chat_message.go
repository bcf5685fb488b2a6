// internal/models/chat_message.go
package models

import (
	"github.com/google/uuid"
)

// ChatMessage is one entry in an order-scoped conversation. Sender and
// receiver are always the order's buyer/seller pair; a staff sender who is
// neither party addresses the buyer.
type ChatMessage struct {
	BaseModel
	SenderID   uuid.UUID  `json:"sender_id" gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID  `json:"receiver_id" gorm:"type:uuid;not null;index"`
	OrderID    *uuid.UUID `json:"order_id,omitempty" gorm:"type:uuid;index"`
	Body       string     `json:"body" gorm:"type:text;not null"`
	IsRead     bool       `json:"is_read" gorm:"default:false"`

	// Relationships
	Sender   User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}
