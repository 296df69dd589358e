package api

import (
	"errors"
	"net/http"

	"github.com/srepett/UploadFileee/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) FileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fileID, ok := parseFileID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid file ID",
			"requestID": requestID,
		})
		return
	}

	err := a.Files.Delete(fileID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundOrForbidden) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found. It either doesn't exist or you don't own it",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusOK)
}
