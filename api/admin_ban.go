package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/srepett/UploadFileee/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type banBody struct {
	// RFC 3339 timestamp, null or omitted clears the ban
	BannedUntil *time.Time `json:"banned_until"`
}

// AdminSetBan bans or unbans a user. Banning someone already banned or
// unbanning a clean account succeeds without complaint
func (a *API) AdminSetBan(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID := c.Param("id")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No user ID provided",
			"requestID": requestID,
		})
		return
	}

	var data banBody
	if err := c.BindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	err := a.Identity.SetBan(userID, data.BannedUntil)
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

		zap.L().Error("Failed to update ban state", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusOK)
}
