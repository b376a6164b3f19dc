package repository

import (
	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryPartnershipRepository interface {
	Create(category *model.CategoryPartnership) error
	FindAll() ([]model.CategoryPartnership, error)
	FindByID(id uint) (*model.CategoryPartnership, error)
	Exists(id uint) (bool, error)
	SeedDefaults(names []string) (bool, error)
	Update(category *model.CategoryPartnership) error
	DeleteAndReassign(id, fallbackID uint) (int64, error)
}

type categoryPartnershipRepository struct {
	db *gorm.DB
}

func NewCategoryPartnershipRepository(db *gorm.DB) CategoryPartnershipRepository {
	return &categoryPartnershipRepository{db: db}
}

func (r *categoryPartnershipRepository) Create(category *model.CategoryPartnership) error {
	logger.Debug("Creating partnership category in database", map[string]interface{}{
		"name": category.Name,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create partnership category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *categoryPartnershipRepository) FindAll() ([]model.CategoryPartnership, error) {
	var categories []model.CategoryPartnership
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list partnership categories", err)
		return nil, err
	}
	return categories, nil
}

func (r *categoryPartnershipRepository) FindByID(id uint) (*model.CategoryPartnership, error) {
	var category model.CategoryPartnership
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryPartnershipRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.CategoryPartnership{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SeedDefaults inserts names in order when the table is empty. It reports whether rows were written.
func (r *categoryPartnershipRepository) SeedDefaults(names []string) (bool, error) {
	seeded := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.CategoryPartnership{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, name := range names {
			if err := tx.Create(&model.CategoryPartnership{Name: name}).Error; err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		logger.Error("Failed to seed default partnership categories", err)
		return false, err
	}
	if seeded {
		logger.Info("Seeded default partnership categories", map[string]interface{}{
			"names": names,
		})
	}
	return seeded, nil
}

func (r *categoryPartnershipRepository) Update(category *model.CategoryPartnership) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update partnership category in database", err, map[string]interface{}{
			"category_partnership_id": category.ID,
		})
		return err
	}
	return nil
}

// DeleteAndReassign moves every partnership of id onto fallbackID and deletes id,
// in one transaction. It returns how many partnerships were moved.
func (r *categoryPartnershipRepository) DeleteAndReassign(id, fallbackID uint) (int64, error) {
	var moved int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Partnership{}).
			Where("category_partnership_id = ?", id).
			Update("category_partnership_id", fallbackID)
		if result.Error != nil {
			return result.Error
		}
		moved = result.RowsAffected

		return deleteByID(tx, &model.CategoryPartnership{}, id, "category_partnership")
	})
	if err != nil {
		logger.Warn("Partnership category delete rolled back", map[string]interface{}{
			"category_partnership_id": id,
			"fallback_id":             fallbackID,
			"error":                   err.Error(),
		})
		return 0, err
	}

	logger.Debug("Partnership category deleted", map[string]interface{}{
		"category_partnership_id": id,
		"reassigned":              moved,
		"fallback_id":             fallbackID,
	})
	return moved, nil
}
