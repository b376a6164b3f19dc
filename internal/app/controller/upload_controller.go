package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

type UploadController struct {
	uploads service.UploadService
}

func NewUploadController(uploads service.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Upload relays one multipart "file" to the blob store and returns its URL
// POST /upload
func (ctrl *UploadController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	file, release, err := formFile(c, "file")
	if err != nil {
		invalidBody(c, log, err, "upload")
		return
	}
	defer release()

	if file == nil {
		apperrors.BadRequest(c, apperrors.UploadFileMissing, "File is required")
		return
	}

	url, err := ctrl.uploads.Upload(c.Request.Context(), *file)
	if err != nil {
		respondServiceError(c, log, err, "upload file")
		return
	}

	log.Info("File uploaded successfully", map[string]interface{}{
		"filename":     file.Name,
		"content_type": file.ContentType,
		"size":         file.Size,
	})

	c.JSON(http.StatusOK, gin.H{
		"url": url,
	})
}
