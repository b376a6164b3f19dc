package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrReferenced   = errors.New("still referenced")
	ErrUploadFailed = errors.New("upload failed")
)

var (
	ErrProductNotFound             = notFound("product")
	ErrCategoryNotFound            = notFound("category")
	ErrPartnershipNotFound         = notFound("partnership")
	ErrCategoryPartnershipNotFound = notFound("partnership category")
	ErrCommunityNotFound           = notFound("community image")
	ErrContactNotFound             = notFound("contact message")

	ErrCategoryInUse             = fmt.Errorf("category has products: %w", ErrReferenced)
	ErrFallbackCategoryProtected = fmt.Errorf("fallback partnership category cannot be deleted: %w", ErrReferenced)

	// ErrFallbackCategoryMissing is a server misconfiguration, not a client error.
	ErrFallbackCategoryMissing = errors.New("fallback partnership category is missing")
)

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func required(field, label string) *ValidationError {
	return invalid(field, label+" is required")
}

// isDuplicateKey reports a unique constraint violation from postgres or sqlite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
