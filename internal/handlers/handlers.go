// internal/handlers/handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resalex/backend/internal/utils"
)

// currentUserID pulls the authenticated user's ID out of the request context.
// Writes the error response itself and returns false when the request is not
// authenticated or the claim is malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}

// pathUUID parses a :param path segment as a UUID, responding 400 on failure.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+param, nil)
		return uuid.Nil, false
	}
	return id, true
}
