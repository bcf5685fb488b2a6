// internal/services/services.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
)

// loadUser fetches a user by id with taxonomy-typed failures.
func loadUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

// loadActor is loadUser plus the active-account gate every mutating
// operation applies to its caller.
func loadActor(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	actor, err := loadUser(db, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, apperrors.Permission("account is not active")
	}
	return actor, nil
}

func loadProduct(db *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Seller").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, apperrors.Internal(err)
	}
	return &product, nil
}

func loadOrder(db *gorm.DB, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Buyer").Preload("Product").Preload("Product.Seller").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Internal(err)
	}
	return &order, nil
}
