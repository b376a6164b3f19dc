package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

type CategoryPartnershipController struct {
	service service.CategoryPartnershipService
}

func NewCategoryPartnershipController(svc service.CategoryPartnershipService) *CategoryPartnershipController {
	return &CategoryPartnershipController{service: svc}
}

type CategoryPartnershipRequest struct {
	Name string `json:"name"`
}

// GetAll lists partnership categories, seeding the defaults on an empty table
// GET /categorypartnership
func (ctrl *CategoryPartnershipController) GetAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.service.ListCategoryPartnerships()
	if err != nil {
		respondServiceError(c, log, err, "list category partnerships")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category_partnerships": categories,
		"count":                 len(categories),
	})
}

// GET /categorypartnership/:id
func (ctrl *CategoryPartnershipController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "category partnership")
	if !ok {
		return
	}

	category, err := ctrl.service.GetCategoryPartnershipByID(id)
	if err != nil {
		respondServiceError(c, log, err, "get category partnership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category_partnership": category})
}

// POST /categorypartnership
func (ctrl *CategoryPartnershipController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryPartnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "category partnership creation")
		return
	}

	category, err := ctrl.service.CreateCategoryPartnership(req.Name)
	if err != nil {
		respondServiceError(c, log, err, "create category partnership")
		return
	}

	log.Info("Category partnership created successfully", map[string]interface{}{
		"category_partnership_id": category.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":              "Category partnership created successfully",
		"category_partnership": category,
	})
}

// PUT /categorypartnership/:id
func (ctrl *CategoryPartnershipController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "category partnership")
	if !ok {
		return
	}

	var req CategoryPartnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "category partnership update")
		return
	}

	category, err := ctrl.service.UpdateCategoryPartnership(id, req.Name)
	if err != nil {
		respondServiceError(c, log, err, "update category partnership")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":              "Category partnership updated successfully",
		"category_partnership": category,
	})
}

// Delete moves dependent partnerships to the fallback category, then deletes
// DELETE /categorypartnership/:id
func (ctrl *CategoryPartnershipController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "category partnership")
	if !ok {
		return
	}

	moved, err := ctrl.service.DeleteCategoryPartnership(id)
	if err != nil {
		respondServiceError(c, log, err, "delete category partnership")
		return
	}

	log.Info("Category partnership deleted successfully", map[string]interface{}{
		"category_partnership_id": id,
		"reassigned":              moved,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Category partnership deleted successfully",
		"reassigned": moved,
	})
}
