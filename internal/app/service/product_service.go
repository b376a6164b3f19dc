package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortPrice     ProductSort = "price"
	ProductSortName      ProductSort = "name"
)

type ProductListOptions struct {
	CategoryID    *uint
	TopSellerOnly bool
	Search        string
	Sort          ProductSort
	SortAscending bool
	Limit         int
}

// ProductInput is the full editable state of a product. Images holds the URLs
// kept from a previous save; new files are appended after them.
type ProductInput struct {
	Name        string
	Price       *float64
	Description string
	Sizes       []string
	Highlights  []string
	Ingredients []string
	Images      []string
	CategoryID  uint
	IsTopSeller bool
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, input ProductInput, newImages []File) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, input ProductInput, newImages []File) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	uploads      UploadService
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	uploads UploadService,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		uploads:      uploads,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id": opts.CategoryID,
		"top_seller":  opts.TopSellerOnly,
		"search":      opts.Search,
		"sort":        opts.Sort,
		"limit":       opts.Limit,
	})

	filter := repository.ProductFilter{
		CategoryID:    opts.CategoryID,
		TopSellerOnly: opts.TopSellerOnly,
		Search:        strings.TrimSpace(opts.Search),
		SortAscending: opts.SortAscending,
		Limit:         opts.Limit,
	}

	switch opts.Sort {
	case ProductSortPrice:
		filter.SortBy = repository.ProductSortPrice
	case ProductSortName:
		filter.SortBy = repository.ProductSortName
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// validate checks the fields shared by create and update. newImages counts
// toward the image requirement.
func (s *productService) validate(input ProductInput, newImages int) error {
	if blank(input.Name) {
		return required("name", "Name")
	}
	if blank(input.Description) {
		return required("description", "Description")
	}
	if input.Price == nil {
		return required("price", "Price")
	}
	if *input.Price < 0 {
		return invalid("price", "Price must not be negative")
	}
	if len(model.StringList(input.Highlights).Compact()) == 0 {
		return invalid("highlights", "At least one highlight is required")
	}
	if len(model.StringList(input.Ingredients).Compact()) == 0 {
		return invalid("ingredients", "At least one ingredient is required")
	}
	if len(model.StringList(input.Images).Compact())+newImages == 0 {
		return invalid("images", "At least one image is required")
	}
	if input.CategoryID == 0 {
		return required("category_id", "Category")
	}

	exists, err := s.categoryRepo.Exists(input.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return invalid("category_id", "Category does not exist")
	}
	return nil
}

func (s *productService) apply(ctx context.Context, product *model.Product, input ProductInput, newImages []File) error {
	if err := s.validate(input, len(newImages)); err != nil {
		return err
	}

	images := model.StringList(input.Images).Compact()
	if len(newImages) > 0 {
		urls, err := s.uploads.UploadAll(ctx, newImages)
		if err != nil {
			return err
		}
		images = append(images, urls...)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = *input.Price
	product.Description = strings.TrimSpace(input.Description)
	product.Sizes = model.StringList(input.Sizes).Compact()
	product.Highlights = model.StringList(input.Highlights).Compact()
	product.Ingredients = model.StringList(input.Ingredients).Compact()
	product.Images = images
	product.CategoryID = input.CategoryID
	product.IsTopSeller = input.IsTopSeller
	product.Category = nil
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput, newImages []File) (*model.Product, error) {
	logger.Info("Creating new product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
		"new_images":  len(newImages),
	})

	product := &model.Product{}
	if err := s.apply(ctx, product, input, newImages); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return s.GetProductByID(product.ID)
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, input ProductInput, newImages []File) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
		"new_images": len(newImages),
	})

	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, product, input, newImages); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})
	return s.GetProductByID(id)
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete: product not found", map[string]interface{}{
				"product_id": id,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
