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

type CommunityService interface {
	ListCommunity() ([]model.Community, error)
	GetCommunityByID(id uint) (*model.Community, error)
	CreateCommunity(ctx context.Context, imageURL string, newImage *File) (*model.Community, error)
	DeleteCommunity(id uint) error
}

type communityService struct {
	repo    repository.CommunityRepository
	uploads UploadService
}

func NewCommunityService(repo repository.CommunityRepository, uploads UploadService) CommunityService {
	return &communityService{repo: repo, uploads: uploads}
}

func (s *communityService) ListCommunity() ([]model.Community, error) {
	return s.repo.FindAll()
}

func (s *communityService) GetCommunityByID(id uint) (*model.Community, error) {
	item, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateCommunity stores a gallery photo from an uploaded file or an existing URL.
func (s *communityService) CreateCommunity(ctx context.Context, imageURL string, newImage *File) (*model.Community, error) {
	image := strings.TrimSpace(imageURL)
	if image == "" && newImage == nil {
		return nil, required("image", "Image")
	}

	if newImage != nil {
		url, err := s.uploads.Upload(ctx, *newImage)
		if err != nil {
			return nil, err
		}
		image = url
	}

	item := &model.Community{Image: image}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Community image created", map[string]interface{}{
		"community_id": item.ID,
	})
	return item, nil
}

func (s *communityService) DeleteCommunity(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommunityNotFound
		}
		return err
	}

	logger.Info("Community image deleted", map[string]interface{}{
		"community_id": id,
	})
	return nil
}
