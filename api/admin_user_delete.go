package api

import (
	"errors"
	"net/http"

	"github.com/srepett/UploadFileee/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminUserDelete removes an account along with every file it owns
func (a *API) AdminUserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID := c.Param("id")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No user ID provided",
			"requestID": requestID,
		})
		return
	}

	err := a.Identity.DeleteUser(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusOK)
}
