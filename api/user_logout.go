package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// UserLogout clears the session cookies. Logging out without a session is
// fine, the result is the same either way
func (a *API) UserLogout(c *gin.Context) {
	ssl := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", "", -1, "/", "", ssl, true)
	c.SetCookie("logged_in", "", -1, "/", "", ssl, false)
	c.Status(http.StatusOK)
}
