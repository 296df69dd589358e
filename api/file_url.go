package api

import (
	"errors"
	"net/http"

	"github.com/srepett/UploadFileee/internal/service"
	"github.com/srepett/UploadFileee/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type customURLBody struct {
	Slug string `json:"slug"`
}

// FileSetURL lets the owner pick a custom slug for a file. The type prefix
// is fixed, so an image stays under /foto/ whatever the slug
func (a *API) FileSetURL(c *gin.Context) {
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

	var data customURLBody
	if err := c.BindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.SlugValidator(data.Slug); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	file, err := a.Files.SetCustomURL(fileID, data.Slug, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundOrForbidden) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found. It either doesn't exist or you don't own it",
				"requestID": requestID,
			})
			return
		}

		if errors.Is(err, service.ErrConflict) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "This custom URL is already taken",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update custom URL", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, file)
}
