package api

import (
	"errors"
	"net/http"

	"github.com/srepett/UploadFileee/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserMe returns the account behind the current session. Used by clients
// at startup to restore their signed-in state
func (a *API) UserMe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	user, err := a.Identity.CurrentUser(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "user_not_found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch current user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
