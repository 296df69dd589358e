package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/srepett/UploadFileee/internal/service"
	"github.com/srepett/UploadFileee/model"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileUpload records an uploaded image or video and hands back its share
// URL. Only the metadata is kept, the bytes are read just far enough to
// sniff the real content type instead of trusting the client's header
func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to detect file type", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var fileType string

	switch {
	case strings.HasPrefix(mime.String(), "image/"):
		fileType = model.TypeImage
	case strings.HasPrefix(mime.String(), "video/"):
		fileType = model.TypeVideo
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Only image and video files are accepted",
			"requestID": requestID,
		})
		return
	}

	owner, err := a.Identity.CurrentUser(userID)
	if err != nil {
		// The middleware re-read the user moments ago, but an admin delete
		// can still slip in between
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "user_not_found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch uploading user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	file, err := a.Files.Create(owner, fh.Filename, fileType, fh.Size)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create file entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, file)
}
