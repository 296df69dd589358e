package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminFiles is the global file listing used for moderation
func (a *API) AdminFiles(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	files, err := a.Files.ListAll()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list all files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, files)
}
