// internal/services/product_service.go
package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/utils"
)

type ProductService struct {
	db    *gorm.DB
	store ImageStore
}

type CreateListingRequest struct {
	Name        string                  `json:"name" validate:"required,min=1,max=200"`
	Description string                  `json:"description"`
	Brand       string                  `json:"brand" validate:"required"`
	Category    models.ProductCategory  `json:"category" validate:"required"`
	Size        string                  `json:"size"`
	Condition   models.ProductCondition `json:"condition" validate:"required"`
	Price       float64                 `json:"price" validate:"required,gt=0"`
	ImageURL    string                  `json:"image_url,omitempty"`
	ImageKey    string                  `json:"image_key,omitempty"`
}

type UpdateListingRequest struct {
	Name        string                  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description string                  `json:"description,omitempty"`
	Brand       string                  `json:"brand,omitempty"`
	Category    models.ProductCategory  `json:"category,omitempty"`
	Size        string                  `json:"size,omitempty"`
	Condition   models.ProductCondition `json:"condition,omitempty"`
	Price       float64                 `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURL    string                  `json:"image_url,omitempty"`
	ImageKey    string                  `json:"image_key,omitempty"`
}

func NewProductService(db *gorm.DB, store ImageStore) *ProductService {
	return &ProductService{
		db:    db,
		store: store,
	}
}

// CreateListing adds a product for sale. Listings always start in `pending`
// no matter who creates them; only review moves them on.
func (s *ProductService) CreateListing(sellerID uuid.UUID, req *CreateListingRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "validation failed", err)
	}
	if !models.ValidCategory(req.Category) {
		return nil, apperrors.Validation("invalid category")
	}
	if !models.ValidCondition(req.Condition) {
		return nil, apperrors.Validation("invalid condition")
	}
	if req.Price <= 0 {
		return nil, apperrors.Validation("price must be positive")
	}

	seller, err := loadActor(s.db, sellerID)
	if err != nil {
		return nil, err
	}
	if !seller.HasAnyRole(models.RoleSeller, models.RoleAdmin, models.RoleRoot) {
		return nil, apperrors.Permission("only sellers can create listings")
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Size:        req.Size,
		Condition:   req.Condition,
		Price:       req.Price,
		SellerID:    seller.ID,
		ImageURL:    req.ImageURL,
		ImageKey:    req.ImageKey,
		Status:      models.ProductStatusPending,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return product, nil
}

// ReviewListing is the moderation decision. Re-review from any state is
// allowed and idempotent.
func (s *ProductService) ReviewListing(actorID, productID uuid.UUID, decision models.ProductStatus) (*models.Product, error) {
	if decision != models.ProductStatusApproved && decision != models.ProductStatusRejected {
		return nil, apperrors.Validation("decision must be approved or rejected")
	}

	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, apperrors.Permission("only staff can review listings")
	}

	product, err := loadProduct(s.db, productID)
	if err != nil {
		return nil, err
	}

	product.Status = decision
	if err := s.db.Model(product).Update("status", decision).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return product, nil
}

// EditListing updates a product. A seller editing their own listing pushes
// it back to `pending` for re-review; staff edits keep the current status.
func (s *ProductService) EditListing(actorID, productID uuid.UUID, req *UpdateListingRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "validation failed", err)
	}

	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	product, err := loadProduct(s.db, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID != actor.ID && !actor.IsStaff() {
		return nil, apperrors.Permission("you cannot edit this listing")
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			return nil, apperrors.Validation("invalid category")
		}
		updates["category"] = req.Category
	}
	if req.Size != "" {
		updates["size"] = req.Size
	}
	if req.Condition != "" {
		if !models.ValidCondition(req.Condition) {
			return nil, apperrors.Validation("invalid condition")
		}
		updates["condition"] = req.Condition
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.ImageURL != "" {
		// Replacing the image releases the previous asset.
		if product.ImageKey != "" && product.ImageKey != req.ImageKey {
			if err := s.store.Delete(product.ImageKey); err != nil {
				logrus.WithError(err).WithField("key", product.ImageKey).Warn("Failed to delete replaced image")
			}
		}
		updates["image_url"] = req.ImageURL
		updates["image_key"] = req.ImageKey
	}

	if !actor.IsStaff() {
		updates["status"] = models.ProductStatusPending
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return loadProduct(s.db, productID)
}

// DeleteListing removes a product and releases its stored image. A second
// delete reports NotFound rather than succeeding silently.
func (s *ProductService) DeleteListing(actorID, productID uuid.UUID) error {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return err
	}

	product, err := loadProduct(s.db, productID)
	if err != nil {
		return err
	}

	if product.SellerID != actor.ID && !actor.IsStaff() {
		return apperrors.Permission("you cannot delete this listing")
	}

	if product.ImageKey != "" {
		if err := s.store.Delete(product.ImageKey); err != nil {
			logrus.WithError(err).WithField("key", product.ImageKey).Warn("Failed to delete product image")
		}
	}

	if err := s.db.Delete(product).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	return loadProduct(s.db, id)
}

// SearchApproved is the public catalog: approved listings filtered by
// category and name/brand text search.
func (s *ProductService) SearchApproved(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusApproved).
		Preload("Seller")

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	allowedSortFields := []string{"created_at", "price", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return products, total, nil
}

func (s *ProductService) RecentApproved(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("status = ?", models.ProductStatusApproved).
		Order("created_at DESC").
		Limit(limit).
		Preload("Seller").
		Find(&products).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

func (s *ProductService) ListBySeller(sellerID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

// ListPendingReview feeds the moderator dashboard.
func (s *ProductService) ListPendingReview(actorID uuid.UUID) ([]models.Product, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, apperrors.Permission("only staff can view the review queue")
	}

	var products []models.Product
	if err := s.db.Where("status = ?", models.ProductStatusPending).
		Order("created_at ASC").
		Preload("Seller").
		Find(&products).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}
