package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/pkg/logger"
)

// parseID reads the :id path parameter, answering 400 itself when it is not a number.
func parseID(c *gin.Context, log *logger.Logger, entity string) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		log.Warn("Invalid "+entity+" ID format", map[string]interface{}{
			"id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+entity+" ID")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service errors onto the HTTP taxonomy. Unexpected errors
// are logged here and answered with a generic message.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, action string) {
	if ve, ok := service.AsValidationError(err); ok {
		log.Warn("Validation failed", map[string]interface{}{
			"action": action,
			"field":  ve.Field,
			"reason": ve.Message,
		})
		fields := map[string]string(nil)
		if ve.Field != "" {
			fields = map[string]string{ve.Field: ve.Message}
		}
		apperrors.RespondWithValidationError(c, ve.Message, fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		log.Warn("Resource not found", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
		apperrors.NotFound(c, apperrors.ResourceNotFound, sentence(err))
	case errors.Is(err, service.ErrReferenced):
		log.Warn("Resource still referenced", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
		apperrors.Conflict(c, apperrors.ResourceReferenced, sentence(err))
	case errors.Is(err, service.ErrUploadFailed):
		log.Error("Upload failed", err, map[string]interface{}{
			"action": action,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to upload image, please try again later")
	default:
		log.Error("Request failed", err, map[string]interface{}{
			"action": action,
		})
		apperrors.ParseAndRespond(c, err, action)
	}
}

// sentence turns "category has products: still referenced" into "Category has products".
func sentence(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ":"); i > 0 {
		msg = msg[:i]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formFiles opens every file sent under field. release closes them and is never nil.
func formFiles(c *gin.Context, field string) ([]service.File, func(), error) {
	release := func() {}
	if !isMultipart(c) {
		return nil, release, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, release, err
	}

	headers := form.File[field]
	files := make([]service.File, 0, len(headers))
	closers := make([]func() error, 0, len(headers))
	release = func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	}
	for _, fh := range headers {
		f, closer, err := service.FileFromHeader(fh)
		if err != nil {
			release()
			return nil, func() {}, err
		}
		files = append(files, f)
		closers = append(closers, closer.Close)
	}
	return files, release, nil
}

// formFile is formFiles for a single optional file.
func formFile(c *gin.Context, field string) (*service.File, func(), error) {
	files, release, err := formFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, release, err
	}
	return &files[0], release, nil
}

func invalidBody(c *gin.Context, log *logger.Logger, err error, what string) {
	log.Warn("Invalid "+what+" request", map[string]interface{}{
		"error": err.Error(),
	})
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
}

// firstNonEmpty picks between a snake_case key and its camelCase alias.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...uint) uint {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
