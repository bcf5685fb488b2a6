// internal/handlers/user.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resalex/backend/internal/i18n"
	"github.com/resalex/backend/internal/services"
	"github.com/resalex/backend/internal/utils"
)

const maxAvatarSize = 5 << 20 // 5 MB

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /users (admin/root only)
func (h *UserHandler) CreateStaffUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateStaffUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.CreateStaffUser(actorID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserCreated),
		"user":    user,
	})
}

// GET /users (staff only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	users, total, err := h.userService.ListUsers(actorID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(targetID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}

// DELETE /users/:id (staff only, root and self excluded)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(actorID, targetID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeleted),
	})
}

// PATCH /users/:id/toggle-active (staff only)
func (h *UserHandler) ToggleActive(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.ToggleActive(actorID, targetID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	messageKey := i18n.KeyUserBlocked
	if user.IsActive {
		messageKey = i18n.KeyUserActivated
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, messageKey),
		"user":    user,
	})
}

// PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateProfile(actorID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// POST /users/me/avatar (multipart)
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, "Avatar file is required", nil)
		return
	}
	if fileHeader.Size > maxAvatarSize {
		utils.BadRequestResponse(c, "Avatar file is too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize+1))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	user, err := h.userService.SetAvatar(actorID, data, fileHeader.Filename, contentType)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}

// GET /users/me/stats
func (h *UserHandler) GetProfileStats(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.userService.GetProfileStats(actorID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}
