// internal/services/order_service.go
package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/apperrors"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/utils"
)

type OrderService struct {
	db       *gorm.DB
	payments PaymentProvider
	currency string
}

type PaymentRequestResult struct {
	Order        *models.Order `json:"order"`
	ClientSecret string        `json:"client_secret"`
}

func NewOrderService(db *gorm.DB, payments PaymentProvider, currency string) *OrderService {
	return &OrderService{
		db:       db,
		payments: payments,
		currency: currency,
	}
}

// PlaceOrder creates an order for an approved listing. The product is marked
// sold in the same transaction through a compare-and-set on its status, so
// two concurrent buyers of the same single-unit listing cannot both succeed.
func (s *OrderService) PlaceOrder(buyerID, productID uuid.UUID) (*models.Order, error) {
	buyer, err := loadActor(s.db, buyerID)
	if err != nil {
		return nil, err
	}

	product, err := loadProduct(s.db, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyer.ID {
		return nil, apperrors.Conflict("you cannot buy your own product")
	}
	if !product.Available() {
		return nil, apperrors.Conflict("product is not available for purchase")
	}

	order := &models.Order{
		BuyerID:     buyer.ID,
		ProductID:   product.ID,
		TotalAmount: product.Price, // snapshot, never re-read
		Status:      models.OrderStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", product.ID, models.ProductStatusApproved).
			Update("status", models.ProductStatusSold)
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("product is not available for purchase")
		}

		if err := tx.Create(order).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loadOrder(s.db, order.ID)
}

// RequestPayment asks the provider for a payment intent covering the order
// total. On provider failure the order stays pending with no intent recorded
// and the caller re-invokes; there are no automatic retries.
func (s *OrderService) RequestPayment(ctx context.Context, actorID, orderID uuid.UUID) (*PaymentRequestResult, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != actor.ID && !actor.IsStaff() {
		return nil, apperrors.Permission("you cannot pay for this order")
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.Conflict("order is not awaiting payment")
	}

	amountMinor := int64(math.Round(order.TotalAmount * 100))
	intent, err := s.payments.CreatePaymentIntent(ctx, amountMinor, s.currency, map[string]string{
		"order_id": order.ID.String(),
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Payment intent creation failed")
		return nil, apperrors.External("payment processing error", err)
	}

	order.PaymentIntentID = intent.ID
	if err := s.db.Model(order).Update("payment_intent_id", intent.ID).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return &PaymentRequestResult{
		Order:        order,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmPayment checks the provider-side intent status and advances the
// order to paid. This is the only path into the `paid` state.
func (s *OrderService) ConfirmPayment(ctx context.Context, actorID, orderID uuid.UUID) (*models.Order, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != actor.ID && !actor.IsStaff() {
		return nil, apperrors.Permission("you cannot confirm this order")
	}
	if order.PaymentIntentID == "" {
		return nil, apperrors.Conflict("order has no payment intent")
	}

	intent, err := s.payments.GetPaymentIntent(ctx, order.PaymentIntentID)
	if err != nil {
		return nil, apperrors.External("payment processing error", err)
	}
	if intent.Status != "succeeded" {
		return nil, apperrors.Conflict("payment has not succeeded")
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
		Update("status", models.OrderStatusPaid)
	if res.Error != nil {
		return nil, apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 && order.Status != models.OrderStatusPaid {
		return nil, apperrors.Conflict("order is not awaiting payment")
	}

	return loadOrder(s.db, order.ID)
}

// TransitionStatus is the fulfillment path: staff may move any order, the
// owning seller only orders on their own products, buyers never. Unknown
// target statuses are ignored without error; moving out of a terminal state
// is a conflict. Cancelling relists the product.
func (s *OrderService) TransitionStatus(actorID, orderID uuid.UUID, target models.OrderStatus, trackingNumber string) (*models.Order, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}

	canUpdate := actor.IsStaff() || order.Product.SellerID == actor.ID
	if !canUpdate {
		return nil, apperrors.Permission("you cannot update this order")
	}

	if !models.FulfillmentTarget(target) {
		// Unrecognized target values are a silent no-op.
		return order, nil
	}

	if order.Status.Terminal() {
		return nil, apperrors.Conflict("order is already " + string(order.Status))
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, apperrors.Conflict("order cannot move from " + string(order.Status) + " to " + string(target))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": target}
		if trackingNumber != "" {
			updates["tracking_number"] = trackingNumber
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("order was updated concurrently")
		}

		if target == models.OrderStatusCancelled {
			// Relist the single-unit product for new buyers.
			if err := tx.Model(&models.Product{}).
				Where("id = ? AND status = ?", order.ProductID, models.ProductStatusSold).
				Update("status", models.ProductStatusApproved).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loadOrder(s.db, order.ID)
}

func (s *OrderService) GetOrder(actorID, orderID uuid.UUID) (*models.Order, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, err
	}

	order, err := loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != actor.ID && order.Product.SellerID != actor.ID && !actor.IsStaff() {
		return nil, apperrors.Permission("you cannot view this order")
	}
	return order, nil
}

func (s *OrderService) ListForBuyer(buyerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Preload("Product").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *OrderService) ListForSeller(sellerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.
		Joins("JOIN products ON products.id = orders.product_id").
		Where("products.seller_id = ?", sellerID).
		Order("orders.created_at DESC").
		Preload("Product").Preload("Buyer").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(actorID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	actor, err := loadActor(s.db, actorID)
	if err != nil {
		return nil, 0, err
	}
	if !actor.IsStaff() {
		return nil, 0, apperrors.Permission("only staff can list all orders")
	}

	query := s.db.Model(&models.Order{}).Preload("Product").Preload("Buyer")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	allowedSortFields := []string{"created_at", "total_amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return orders, total, nil
}
