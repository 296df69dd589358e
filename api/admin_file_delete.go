package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminFileDelete removes any file by ID, no ownership check. Deleting a
// file that's already gone still returns 200
func (a *API) AdminFileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fileID, ok := parseFileID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid file ID",
			"requestID": requestID,
		})
		return
	}

	if err := a.Files.AdminDelete(fileID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusOK)
}
