package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/srepett/UploadFileee/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewJWTMiddleware validates the auth_token cookie and tags the request
// with the caller's identity. The user row is re-read on every request so
// deleted accounts and fresh bans take effect immediately instead of at
// the next login
func NewJWTMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "no_session",
				"requestID": requestID,
			})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("jwt.secret")), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})
			return
		}

		exp, ok := claims["exp"].(float64)
		if !ok || time.Now().Unix() >= int64(exp) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_expired",
				"requestID": requestID,
			})
			return
		}

		var user model.User
		err = d.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error":     "user_not_found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user.BannedAt(time.Now()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":        "account_banned",
				"banned_until": user.BannedUntil,
				"requestID":    requestID,
			})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Next()
	}
}
