package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AdminStats aggregates global storage usage for the admin dashboard.
// remaining_storage goes negative when over capacity, that's on purpose
func (a *API) AdminStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	users, err := a.Identity.CountUsers()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	stats, err := a.Files.ComputeStats(users, viper.GetInt64("storage.total_capacity"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to compute storage stats", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, stats)
}
