package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileResolve serves the share-path lookup behind /foto/:slug and
// /video/:slug. The full request path is the lookup key, matched against
// assigned and custom URLs alike
func (a *API) FileResolve(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	file, found, err := a.Files.Resolve(c.Request.URL.Path)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to resolve share path", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "file_not_found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, file)
}
