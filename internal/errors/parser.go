package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a status and code with a message safe to show to clients
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError maps persistence failures onto a client-safe ErrorInfo. Driver details
// never reach the message; callers log the original error themselves.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: defaultMessage(context)}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: notFoundMessage(context)}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceAlreadyExists, Message: "A record with the same value already exists"}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return parseForeignKeyError(strings.ToLower(err.Error()))
	}

	lower := strings.ToLower(err.Error())

	// PostgreSQL 23505 / SQLite UNIQUE
	if strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint") {
		if strings.Contains(lower, "email") {
			return ErrorInfo{Status: http.StatusConflict, Code: AuthEmailAlreadyExists, Message: "Email is already registered"}
		}
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceAlreadyExists, Message: "A record with the same value already exists"}
	}

	// PostgreSQL 23503 / SQLite FOREIGN KEY
	if strings.Contains(lower, "foreign key constraint") {
		return parseForeignKeyError(lower)
	}

	// PostgreSQL 23502 / SQLite NOT NULL
	if strings.Contains(lower, "not-null constraint") || strings.Contains(lower, "not null constraint") {
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "timeout") {
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalExternalAPI, Message: "An upstream service is unavailable, please try again later"}
	}

	return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: defaultMessage(context)}
}

func parseForeignKeyError(lower string) ErrorInfo {
	if strings.Contains(lower, "still referenced") {
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceReferenced, Message: "The record is still referenced by other data"}
	}
	if strings.Contains(lower, "category_partnership") {
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: "Partnership category does not exist"}
	}
	if strings.Contains(lower, "category") {
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: "Category does not exist"}
	}
	return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: "Referenced record does not exist"}
}

func notFoundMessage(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "categorypartnership") || strings.Contains(lower, "category partnership"):
		return "Partnership category not found"
	case strings.Contains(lower, "category"):
		return "Category not found"
	case strings.Contains(lower, "product"):
		return "Product not found"
	case strings.Contains(lower, "partnership"):
		return "Partnership not found"
	case strings.Contains(lower, "community"):
		return "Community image not found"
	case strings.Contains(lower, "contact"):
		return "Contact message not found"
	case strings.Contains(lower, "user"):
		return "User not found"
	}
	return "The requested record was not found"
}

func defaultMessage(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "create"):
		return "Failed to create the record, please try again later"
	case strings.Contains(lower, "update"):
		return "Failed to update the record, please try again later"
	case strings.Contains(lower, "delete"):
		return "Failed to delete the record, please try again later"
	}
	return "Something went wrong, please try again later"
}

// ParseAndRespond parses err and writes the matching response
func ParseAndRespond(c interface{ JSON(int, interface{}) }, err error, context string) {
	info := ParseError(err, context)
	c.JSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
