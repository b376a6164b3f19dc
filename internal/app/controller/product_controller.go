package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest is accepted as JSON or as a multipart form. In a form, list
// fields repeat their key and new image files are sent under "files".
type ProductRequest struct {
	Name        string   `json:"name" form:"name"`
	Price       *float64 `json:"price" form:"price"`
	Description string   `json:"description" form:"description"`
	Sizes       []string `json:"sizes" form:"sizes"`
	Highlights  []string `json:"highlights" form:"highlights"`
	Ingredients []string `json:"ingredients" form:"ingredients"`
	Images      []string `json:"images" form:"images"`
	CategoryID  uint     `json:"category_id" form:"category_id"`
	IsTopSeller bool     `json:"is_top_seller" form:"is_top_seller"`

	// camelCase keys sent by the admin frontend
	CategoryIDCamel  uint `json:"categoryId" form:"categoryId"`
	IsTopSellerCamel bool `json:"isTopSeller" form:"isTopSeller"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Sizes:       r.Sizes,
		Highlights:  r.Highlights,
		Ingredients: r.Ingredients,
		Images:      r.Images,
		CategoryID:  firstNonZero(r.CategoryID, r.CategoryIDCamel),
		IsTopSeller: r.IsTopSeller || r.IsTopSellerCamel,
	}
}

// GetAllProducts returns products, newest first unless sorted otherwise
// GET /product?category_id=&top_seller=&search=&sort=&order=&limit=
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductListOptions{
		Search:        strings.TrimSpace(c.Query("search")),
		Sort:          service.ProductSort(c.DefaultQuery("sort", string(service.ProductSortCreatedAt))),
		SortAscending: strings.EqualFold(c.Query("order"), "asc"),
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
			return
		}
		categoryID := uint(id)
		opts.CategoryID = &categoryID
	}
	if raw := c.Query("top_seller"); raw != "" {
		top, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "top_seller must be true or false")
			return
		}
		opts.TopSellerOnly = top
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "limit must be a positive number")
			return
		}
		opts.Limit = limit
	}

	products, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		respondServiceError(c, log, err, "list products")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a product by ID
// GET /product/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "product")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, log, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product (Admin only)
// POST /product
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, log, err, "product creation")
		return
	}

	files, release, err := formFiles(c, "files")
	if err != nil {
		invalidBody(c, log, err, "product creation")
		return
	}
	defer release()

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), req.input(), files)
	if err != nil {
		respondServiceError(c, log, err, "create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"images":     len(product.Images),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct replaces a product's editable fields (Admin only)
// PUT /product/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "product")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, log, err, "product update")
		return
	}

	files, release, err := formFiles(c, "files")
	if err != nil {
		invalidBody(c, log, err, "product update")
		return
	}
	defer release()

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), id, req.input(), files)
	if err != nil {
		respondServiceError(c, log, err, "update product")
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct deletes a product (Admin only)
// DELETE /product/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "product")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondServiceError(c, log, err, "delete product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
