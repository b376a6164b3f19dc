package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

type ContactRequest struct {
	FullName      string `json:"full_name"`
	FullNameCamel string `json:"fullName"`
	Email         string `json:"email"`
	Message       string `json:"message"`
}

// MarkReadRequest accepts is_read or isRead; one of them is required.
type MarkReadRequest struct {
	IsRead      *bool `json:"is_read"`
	IsReadCamel *bool `json:"isRead"`
}

func (r MarkReadRequest) value() *bool {
	if r.IsRead != nil {
		return r.IsRead
	}
	return r.IsReadCamel
}

// GetAll lists contact messages (Admin only)
// GET /contact?unread=true
func (ctrl *ContactController) GetAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	unreadOnly := false
	if raw := c.Query("unread"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "unread must be true or false")
			return
		}
		unreadOnly = v
	}

	contacts, err := ctrl.contactService.ListContacts(unreadOnly)
	if err != nil {
		respondServiceError(c, log, err, "list contacts")
		return
	}

	unread, err := ctrl.contactService.CountUnread()
	if err != nil {
		respondServiceError(c, log, err, "count unread contacts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": contacts,
		"count":    len(contacts),
		"unread":   unread,
	})
}

// GET /contact/:id
func (ctrl *ContactController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "contact")
	if !ok {
		return
	}

	contact, err := ctrl.contactService.GetContactByID(id)
	if err != nil {
		respondServiceError(c, log, err, "get contact")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// Create stores a message from the public contact form
// POST /contact
func (ctrl *ContactController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "contact")
		return
	}

	contact, err := ctrl.contactService.CreateContact(service.ContactInput{
		FullName: firstNonEmpty(req.FullName, req.FullNameCamel),
		Email:    req.Email,
		Message:  req.Message,
	})
	if err != nil {
		respondServiceError(c, log, err, "create contact")
		return
	}

	log.Info("Contact message received", map[string]interface{}{
		"contact_id": contact.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"contact": contact,
	})
}

// MarkRead flips the read flag (Admin only)
// PATCH /contact/:id
func (ctrl *ContactController) MarkRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "contact")
	if !ok {
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "contact update")
		return
	}

	isRead := req.value()
	if isRead == nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "is_read is required")
		return
	}

	contact, err := ctrl.contactService.MarkRead(id, *isRead)
	if err != nil {
		respondServiceError(c, log, err, "update contact")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact updated successfully",
		"contact": contact,
	})
}

// DELETE /contact/:id
func (ctrl *ContactController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "contact")
	if !ok {
		return
	}

	if err := ctrl.contactService.DeleteContact(id); err != nil {
		respondServiceError(c, log, err, "delete contact")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
