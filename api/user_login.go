package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/srepett/UploadFileee/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const sessionTTL = time.Hour * 24 * 30

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	user, err := a.Identity.Login(data.Email, data.Password)
	if err != nil {
		var banned *service.BannedError
		if errors.As(err, &banned) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":        "account_banned",
				"banned_until": banned.Until.Format(time.RFC3339),
				"requestID":    requestID,
			})
			return
		}

		if errors.Is(err, service.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid credentials",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to log in user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.setSession(c, user.ID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}

// setSession issues the signed auth cookie. The session lives in the
// cookie itself, there's no server-side pointer to clear
func (a *API) setSession(c *gin.Context, userID string) error {
	token, err := makeToken(&jwt.MapClaims{
		"user_id": userID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(sessionTTL).Unix(),
	})
	if err != nil {
		return err
	}

	ssl := viper.GetBool("host.ssl.enabled")
	maxAge := int(sessionTTL.Seconds())

	c.SetCookie("auth_token", token, maxAge, "/", "", ssl, true)
	c.SetCookie("logged_in", "1", maxAge, "/", "", ssl, false)
	return nil
}

func makeToken(c *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}
