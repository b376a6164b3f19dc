package repository

import (
	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

type PartnershipFilter struct {
	CategoryPartnershipID *uint
}

type PartnershipRepository interface {
	Create(partnership *model.Partnership) error
	FindAll(filter PartnershipFilter) ([]model.Partnership, error)
	FindByID(id uint) (*model.Partnership, error)
	Update(partnership *model.Partnership) error
	Delete(id uint) error
}

type partnershipRepository struct {
	db *gorm.DB
}

func NewPartnershipRepository(db *gorm.DB) PartnershipRepository {
	return &partnershipRepository{db: db}
}

func (r *partnershipRepository) Create(partnership *model.Partnership) error {
	logger.Debug("Creating partnership in database", map[string]interface{}{
		"name":                    partnership.Name,
		"category_partnership_id": partnership.CategoryPartnershipID,
	})

	if err := r.db.Omit("CategoryPartnership").Create(partnership).Error; err != nil {
		logger.Error("Failed to create partnership in database", err, map[string]interface{}{
			"name": partnership.Name,
		})
		return err
	}
	return nil
}

func (r *partnershipRepository) FindAll(filter PartnershipFilter) ([]model.Partnership, error) {
	query := r.db.Model(&model.Partnership{}).Preload("CategoryPartnership")
	if filter.CategoryPartnershipID != nil {
		query = query.Where("category_partnership_id = ?", *filter.CategoryPartnershipID)
	}

	var partnerships []model.Partnership
	if err := query.Order("created_at DESC").Order("id DESC").Find(&partnerships).Error; err != nil {
		logger.Error("Failed to list partnerships", err)
		return nil, err
	}
	return partnerships, nil
}

func (r *partnershipRepository) FindByID(id uint) (*model.Partnership, error) {
	var partnership model.Partnership
	if err := r.db.Preload("CategoryPartnership").First(&partnership, id).Error; err != nil {
		return nil, err
	}
	return &partnership, nil
}

func (r *partnershipRepository) Update(partnership *model.Partnership) error {
	if err := r.db.Omit("CategoryPartnership", "CreatedAt").Save(partnership).Error; err != nil {
		logger.Error("Failed to update partnership in database", err, map[string]interface{}{
			"partnership_id": partnership.ID,
		})
		return err
	}
	return nil
}

func (r *partnershipRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Partnership{}, id, "partnership")
}
