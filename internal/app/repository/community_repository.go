package repository

import (
	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

type CommunityRepository interface {
	Create(community *model.Community) error
	FindAll() ([]model.Community, error)
	FindByID(id uint) (*model.Community, error)
	Delete(id uint) error
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(community *model.Community) error {
	if err := r.db.Create(community).Error; err != nil {
		logger.Error("Failed to create community image in database", err)
		return err
	}
	return nil
}

func (r *communityRepository) FindAll() ([]model.Community, error) {
	var items []model.Community
	if err := r.db.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		logger.Error("Failed to list community images", err)
		return nil, err
	}
	return items, nil
}

func (r *communityRepository) FindByID(id uint) (*model.Community, error) {
	var item model.Community
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *communityRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Community{}, id, "community")
}
