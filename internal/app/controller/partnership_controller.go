package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

type PartnershipController struct {
	partnershipService service.PartnershipService
}

func NewPartnershipController(partnershipService service.PartnershipService) *PartnershipController {
	return &PartnershipController{partnershipService: partnershipService}
}

// PartnershipRequest is accepted as JSON or multipart. Image keeps an existing
// URL; a file under "file" replaces it.
type PartnershipRequest struct {
	Name                  string `json:"name" form:"name"`
	Image                 string `json:"image" form:"image"`
	CategoryPartnershipID uint   `json:"category_partnership_id" form:"category_partnership_id"`

	CategoryPartnershipIDCamel uint `json:"categoryPartnershipId" form:"categoryPartnershipId"`
}

func (r PartnershipRequest) input() service.PartnershipInput {
	return service.PartnershipInput{
		Name:                  r.Name,
		Image:                 r.Image,
		CategoryPartnershipID: firstNonZero(r.CategoryPartnershipID, r.CategoryPartnershipIDCamel),
	}
}

// GET /partnership?category_partnership_id=
func (ctrl *PartnershipController) GetAllPartnerships(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var filter *uint
	if raw := c.Query("category_partnership_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category partnership ID")
			return
		}
		categoryID := uint(id)
		filter = &categoryID
	}

	partnerships, err := ctrl.partnershipService.ListPartnerships(filter)
	if err != nil {
		respondServiceError(c, log, err, "list partnerships")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"partnerships": partnerships,
		"count":        len(partnerships),
	})
}

// GET /partnership/:id
func (ctrl *PartnershipController) GetPartnershipByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "partnership")
	if !ok {
		return
	}

	partnership, err := ctrl.partnershipService.GetPartnershipByID(id)
	if err != nil {
		respondServiceError(c, log, err, "get partnership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"partnership": partnership})
}

// POST /partnership
func (ctrl *PartnershipController) CreatePartnership(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PartnershipRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, log, err, "partnership creation")
		return
	}

	file, release, err := formFile(c, "file")
	if err != nil {
		invalidBody(c, log, err, "partnership creation")
		return
	}
	defer release()

	partnership, err := ctrl.partnershipService.CreatePartnership(c.Request.Context(), req.input(), file)
	if err != nil {
		respondServiceError(c, log, err, "create partnership")
		return
	}

	log.Info("Partnership created successfully", map[string]interface{}{
		"partnership_id": partnership.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Partnership created successfully",
		"partnership": partnership,
	})
}

// PUT /partnership/:id
func (ctrl *PartnershipController) UpdatePartnership(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "partnership")
	if !ok {
		return
	}

	var req PartnershipRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, log, err, "partnership update")
		return
	}

	file, release, err := formFile(c, "file")
	if err != nil {
		invalidBody(c, log, err, "partnership update")
		return
	}
	defer release()

	partnership, err := ctrl.partnershipService.UpdatePartnership(c.Request.Context(), id, req.input(), file)
	if err != nil {
		respondServiceError(c, log, err, "update partnership")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Partnership updated successfully",
		"partnership": partnership,
	})
}

// DELETE /partnership/:id
func (ctrl *PartnershipController) DeletePartnership(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "partnership")
	if !ok {
		return
	}

	if err := ctrl.partnershipService.DeletePartnership(id); err != nil {
		respondServiceError(c, log, err, "delete partnership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partnership deleted successfully"})
}
