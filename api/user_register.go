package api

import (
	"errors"
	"net/http"

	"github.com/srepett/UploadFileee/internal/service"
	"github.com/srepett/UploadFileee/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		zap.L().Debug("Invalid email", zap.Error(err), zap.String("requestID", requestID))

		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		zap.L().Debug("Invalid password", zap.Error(err), zap.String("requestID", requestID))

		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	user, err := a.Identity.Register(data.Email, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "This email is already registered. Please login or use a different email",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
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

	c.JSON(http.StatusCreated, user)
}
