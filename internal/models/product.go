// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name        string           `json:"name" gorm:"size:200;not null"`
	Description string           `json:"description" gorm:"type:text"`
	Brand       string           `json:"brand" gorm:"size:100"`
	Category    ProductCategory  `json:"category" gorm:"type:varchar(50);index"`
	Size        string           `json:"size" gorm:"size:20"`
	Condition   ProductCondition `json:"condition" gorm:"type:varchar(20)"`
	Price       float64          `json:"price" gorm:"type:decimal(10,2);not null"`
	SellerID    uuid.UUID        `json:"seller_id" gorm:"type:uuid;not null;index"`
	ImageURL    string           `json:"image_url,omitempty" gorm:"size:255"`
	ImageKey    string           `json:"-" gorm:"size:255"`
	Status      ProductStatus    `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Seller User    `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:ProductID"`
}

// productTransitions is the listing state machine. A seller edit is the one
// path outside the table: it forces any state back to pending.
var productTransitions = map[ProductStatus][]ProductStatus{
	ProductStatusPending:  {ProductStatusApproved, ProductStatusRejected},
	ProductStatusApproved: {ProductStatusSold, ProductStatusRejected},
	ProductStatusRejected: {ProductStatusApproved},
	ProductStatusSold:     {ProductStatusApproved}, // relist after a cancelled order
}

func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	for _, t := range productTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Available reports whether the listing can currently be ordered.
func (p *Product) Available() bool {
	return p.Status == ProductStatusApproved
}
