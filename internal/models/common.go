// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// IDs are generated application-side so the same models run against
// Postgres and the SQLite test driver.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Enums
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleSeller    UserRole = "seller"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
	RoleRoot      UserRole = "root"
)

// StaffRoles hold moderation override authority over listings and orders.
var StaffRoles = []UserRole{RoleModerator, RoleAdmin, RoleRoot}

func ValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleSeller, RoleModerator, RoleAdmin, RoleRoot:
		return true
	}
	return false
}

type ProductCategory string

const (
	CategorySneakers     ProductCategory = "sneakers"
	CategoryClothing     ProductCategory = "clothing"
	CategoryAccessories  ProductCategory = "accessories"
	CategoryElectronics  ProductCategory = "electronics"
	CategoryCollectibles ProductCategory = "collectibles"
)

func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategorySneakers, CategoryClothing, CategoryAccessories, CategoryElectronics, CategoryCollectibles:
		return true
	}
	return false
}

type ProductCondition string

const (
	ConditionNew     ProductCondition = "new"
	ConditionLikeNew ProductCondition = "like_new"
	ConditionGood    ProductCondition = "good"
	ConditionFair    ProductCondition = "fair"
	ConditionPoor    ProductCondition = "poor"
)

func ValidCondition(c ProductCondition) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
	ProductStatusSold     ProductStatus = "sold"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)
