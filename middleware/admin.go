package middleware

import (
	"net/http"

	"github.com/srepett/UploadFileee/model"

	"github.com/gin-gonic/gin"
)

// NewAdminMiddleware gates a route group to admin accounts. Must run after
// the JWT middleware, which sets userRole from the database row
func NewAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if c.GetString("userRole") != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "admin_only",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
