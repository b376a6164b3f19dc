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

// PartnershipInput carries the editable fields. Image is the URL kept from a
// previous save and is replaced when a new file is sent.
type PartnershipInput struct {
	Name                  string
	Image                 string
	CategoryPartnershipID uint
}

type PartnershipService interface {
	ListPartnerships(categoryPartnershipID *uint) ([]model.Partnership, error)
	GetPartnershipByID(id uint) (*model.Partnership, error)
	CreatePartnership(ctx context.Context, input PartnershipInput, newImage *File) (*model.Partnership, error)
	UpdatePartnership(ctx context.Context, id uint, input PartnershipInput, newImage *File) (*model.Partnership, error)
	DeletePartnership(id uint) error
}

type partnershipService struct {
	partnershipRepo repository.PartnershipRepository
	categoryRepo    repository.CategoryPartnershipRepository
	uploads         UploadService
}

func NewPartnershipService(
	partnershipRepo repository.PartnershipRepository,
	categoryRepo repository.CategoryPartnershipRepository,
	uploads UploadService,
) PartnershipService {
	return &partnershipService{
		partnershipRepo: partnershipRepo,
		categoryRepo:    categoryRepo,
		uploads:         uploads,
	}
}

func (s *partnershipService) ListPartnerships(categoryPartnershipID *uint) ([]model.Partnership, error) {
	return s.partnershipRepo.FindAll(repository.PartnershipFilter{
		CategoryPartnershipID: categoryPartnershipID,
	})
}

func (s *partnershipService) GetPartnershipByID(id uint) (*model.Partnership, error) {
	partnership, err := s.partnershipRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnershipNotFound
		}
		logger.Error("Failed to fetch partnership", err, map[string]interface{}{
			"partnership_id": id,
		})
		return nil, err
	}
	return partnership, nil
}

func (s *partnershipService) apply(ctx context.Context, partnership *model.Partnership, input PartnershipInput, newImage *File) error {
	if blank(input.Name) {
		return required("name", "Name")
	}
	if blank(input.Image) && newImage == nil {
		return required("image", "Image")
	}
	if input.CategoryPartnershipID == 0 {
		return required("category_partnership_id", "Partnership category")
	}

	exists, err := s.categoryRepo.Exists(input.CategoryPartnershipID)
	if err != nil {
		return err
	}
	if !exists {
		return invalid("category_partnership_id", "Partnership category does not exist")
	}

	image := strings.TrimSpace(input.Image)
	if newImage != nil {
		url, err := s.uploads.Upload(ctx, *newImage)
		if err != nil {
			return err
		}
		image = url
	}

	partnership.Name = strings.TrimSpace(input.Name)
	partnership.Image = image
	partnership.CategoryPartnershipID = input.CategoryPartnershipID
	partnership.CategoryPartnership = nil
	return nil
}

func (s *partnershipService) CreatePartnership(ctx context.Context, input PartnershipInput, newImage *File) (*model.Partnership, error) {
	partnership := &model.Partnership{}
	if err := s.apply(ctx, partnership, input, newImage); err != nil {
		return nil, err
	}

	if err := s.partnershipRepo.Create(partnership); err != nil {
		return nil, err
	}

	logger.Info("Partnership created", map[string]interface{}{
		"partnership_id":          partnership.ID,
		"category_partnership_id": partnership.CategoryPartnershipID,
	})
	return s.GetPartnershipByID(partnership.ID)
}

func (s *partnershipService) UpdatePartnership(ctx context.Context, id uint, input PartnershipInput, newImage *File) (*model.Partnership, error) {
	partnership, err := s.GetPartnershipByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, partnership, input, newImage); err != nil {
		return nil, err
	}

	if err := s.partnershipRepo.Update(partnership); err != nil {
		return nil, err
	}

	logger.Info("Partnership updated", map[string]interface{}{
		"partnership_id": id,
	})
	return s.GetPartnershipByID(id)
}

func (s *partnershipService) DeletePartnership(id uint) error {
	if err := s.partnershipRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartnershipNotFound
		}
		return err
	}

	logger.Info("Partnership deleted", map[string]interface{}{
		"partnership_id": id,
	})
	return nil
}
