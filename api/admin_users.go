package api

import (
	"net/http"

	"github.com/srepett/UploadFileee/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type adminUserView struct {
	model.User
	FileCount int64 `json:"file_count"`
}

type fileCountRow struct {
	UserID string
	N      int64
}

// AdminUsers lists every account with its file count and ban state.
// Password hashes stay out thanks to the model's json tag
func (a *API) AdminUsers(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var users []model.User

	err := a.DB.
		Order("created_at desc").
		Find(&users).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var rows []fileCountRow

	err = a.DB.
		Model(&model.File{}).
		Select("user_id, count(*) AS n").
		Group("user_id").
		Find(&rows).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count user files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.UserID] = r.N
	}

	views := make([]adminUserView, 0, len(users))
	for _, u := range users {
		views = append(views, adminUserView{
			User:      u,
			FileCount: counts[u.ID],
		})
	}

	c.JSON(http.StatusOK, views)
}
