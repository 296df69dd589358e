package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileList returns the caller's files, most recent first
func (a *API) FileList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	files, err := a.Files.ListForUser(userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list user files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, files)
}
