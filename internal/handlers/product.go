// internal/handlers/product.go
package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/resalex/backend/internal/i18n"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/services"
	"github.com/resalex/backend/internal/utils"
)

const maxImageSize = 10 << 20 // 10 MB

type ProductHandler struct {
	productService *services.ProductService
	imageStore     services.ImageStore
}

func NewProductHandler(productService *services.ProductService, imageStore services.ImageStore) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageStore:     imageStore,
	}
}

// POST /products (seller/admin/root)
func (h *ProductHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateListing(sellerID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// GET /products (public catalog, approved only)
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.SearchApproved(params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/recent
func (h *ProductHandler) RecentProducts(c *gin.Context) {
	limit := 8
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	products, err := h.productService.RecentApproved(limit)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(productID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// PUT /products/:id (owner or staff)
func (h *ProductHandler) UpdateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.EditListing(actorID, productID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	messageKey := i18n.KeyProductUpdated
	if product.Status == models.ProductStatusPending {
		messageKey = i18n.KeyProductResubmitted
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, messageKey),
		"product": product,
	})
}

// DELETE /products/:id (owner or staff)
func (h *ProductHandler) DeleteListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteListing(actorID, productID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// PATCH /products/:id/review (staff only)
func (h *ProductHandler) ReviewListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.ProductStatus `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.ReviewListing(actorID, productID, req.Status)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductStatusSet),
		"product": product,
	})
}

// GET /products/review-queue (staff only)
func (h *ProductHandler) ListPendingReview(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := h.productService.ListPendingReview(actorID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /products/mine
func (h *ProductHandler) ListMyListings(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := h.productService.ListBySeller(sellerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// POST /products/images (multipart upload, returns the stored URL and key)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}
	if fileHeader.Size > maxImageSize {
		utils.BadRequestResponse(c, "Image file is too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	result, err := h.imageStore.Store(data, fileHeader.Filename, contentType)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"url": result.URL,
		"key": result.Key,
	})
}
