package service

import (
	"errors"
	"strings"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetCategoryByID(id uint) (*model.Category, error)
	CreateCategory(name string) (*model.Category, error)
	UpdateCategory(id uint, name string) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategoryByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, required("name", "Name")
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, required("name", "Name")
	}

	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to remove a category products still point at.
func (s *categoryService) DeleteCategory(id uint) error {
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Cannot delete: category has products", map[string]interface{}{
			"category_id":   id,
			"product_count": count,
		})
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
