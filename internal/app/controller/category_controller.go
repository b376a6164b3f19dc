package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CategoryRequest struct {
	Name string `json:"name"`
}

// GET /category
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		respondServiceError(c, log, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GET /category/:id
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "category")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetCategoryByID(id)
	if err != nil {
		respondServiceError(c, log, err, "get category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// POST /category
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "category creation")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name)
	if err != nil {
		respondServiceError(c, log, err, "create category")
		return
	}

	log.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

// PUT /category/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "category")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, log, err, "category update")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, req.Name)
	if err != nil {
		respondServiceError(c, log, err, "update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DELETE /category/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "category")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		respondServiceError(c, log, err, "delete category")
		return
	}

	log.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
