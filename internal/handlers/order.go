// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resalex/backend/internal/i18n"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/services"
	"github.com/resalex/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if req.ProductID == uuid.Nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "product_id"), nil)
		return
	}

	order, err := h.orderService.PlaceOrder(buyerID, req.ProductID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCreated),
		"order":   order,
	})
}

// POST /orders/:id/payment-intent
func (h *OrderHandler) RequestPayment(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.orderService.RequestPayment(c.Request.Context(), actorID, orderID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order":         result.Order,
		"client_secret": result.ClientSecret,
	})
}

// POST /orders/:id/confirm-payment
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.ConfirmPayment(c.Request.Context(), actorID, orderID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// PATCH /orders/:id/status (staff or owning seller)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status         models.OrderStatus `json:"status" validate:"required"`
		TrackingNumber string             `json:"tracking_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.TransitionStatus(actorID, orderID, req.Status, req.TrackingNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(actorID, orderID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// GET /orders/purchases
func (h *OrderHandler) ListPurchases(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForBuyer(buyerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// GET /orders/sales
func (h *OrderHandler) ListSales(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForSeller(sellerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// GET /orders (staff only)
func (h *OrderHandler) ListAll(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	orders, total, err := h.orderService.ListAll(actorID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}
