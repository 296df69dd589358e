package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseFileID reads the :id route param. Returns 0 and false on anything
// that isn't a positive integer
func parseFileID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}
