package service

import (
	"errors"
	"strings"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryPartnershipService interface {
	ListCategoryPartnerships() ([]model.CategoryPartnership, error)
	GetCategoryPartnershipByID(id uint) (*model.CategoryPartnership, error)
	CreateCategoryPartnership(name string) (*model.CategoryPartnership, error)
	UpdateCategoryPartnership(id uint, name string) (*model.CategoryPartnership, error)
	DeleteCategoryPartnership(id uint) (int64, error)
}

type categoryPartnershipService struct {
	repo       repository.CategoryPartnershipRepository
	fallbackID uint
}

// NewCategoryPartnershipService builds the service. Partnerships of a deleted
// category move to fallbackID.
func NewCategoryPartnershipService(repo repository.CategoryPartnershipRepository, fallbackID uint) CategoryPartnershipService {
	return &categoryPartnershipService{repo: repo, fallbackID: fallbackID}
}

// ListCategoryPartnerships seeds the default buckets when the table is empty.
func (s *categoryPartnershipService) ListCategoryPartnerships() ([]model.CategoryPartnership, error) {
	if _, err := s.repo.SeedDefaults(model.DefaultCategoryPartnershipNames); err != nil {
		return nil, err
	}
	return s.repo.FindAll()
}

func (s *categoryPartnershipService) GetCategoryPartnershipByID(id uint) (*model.CategoryPartnership, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryPartnershipNotFound
		}
		logger.Error("Failed to fetch partnership category", err, map[string]interface{}{
			"category_partnership_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryPartnershipService) CreateCategoryPartnership(name string) (*model.CategoryPartnership, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, required("name", "Name")
	}

	category := &model.CategoryPartnership{Name: name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Partnership category created", map[string]interface{}{
		"category_partnership_id": category.ID,
		"name":                    category.Name,
	})
	return category, nil
}

func (s *categoryPartnershipService) UpdateCategoryPartnership(id uint, name string) (*model.CategoryPartnership, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, required("name", "Name")
	}

	category, err := s.GetCategoryPartnershipByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategoryPartnership reassigns dependents to the fallback category and
// deletes id atomically. It returns how many partnerships moved.
func (s *categoryPartnershipService) DeleteCategoryPartnership(id uint) (int64, error) {
	if id == s.fallbackID {
		logger.Warn("Refusing to delete fallback partnership category", map[string]interface{}{
			"category_partnership_id": id,
		})
		return 0, ErrFallbackCategoryProtected
	}

	exists, err := s.repo.Exists(id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrCategoryPartnershipNotFound
	}

	exists, err = s.repo.Exists(s.fallbackID)
	if err != nil {
		return 0, err
	}
	if !exists {
		logger.Error("Fallback partnership category is missing", ErrFallbackCategoryMissing, map[string]interface{}{
			"fallback_id": s.fallbackID,
		})
		return 0, ErrFallbackCategoryMissing
	}

	moved, err := s.repo.DeleteAndReassign(id, s.fallbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCategoryPartnershipNotFound
		}
		return 0, err
	}

	logger.Info("Partnership category deleted", map[string]interface{}{
		"category_partnership_id": id,
		"reassigned":              moved,
		"fallback_id":             s.fallbackID,
	})
	return moved, nil
}
