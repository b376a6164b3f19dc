package repository

import (
	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactFilter struct {
	UnreadOnly bool
}

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindAll(filter ContactFilter) ([]model.Contact, error)
	FindByID(id uint) (*model.Contact, error)
	SetRead(id uint, isRead bool) error
	CountUnread() (int64, error)
	Delete(id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"email": contact.Email,
	})

	if err := r.db.Create(contact).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": contact.Email,
		})
		return err
	}
	return nil
}

func (r *contactRepository) FindAll(filter ContactFilter) ([]model.Contact, error) {
	query := r.db.Model(&model.Contact{})
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var contacts []model.Contact
	if err := query.Order("created_at DESC").Order("id DESC").Find(&contacts).Error; err != nil {
		logger.Error("Failed to list contact messages", err)
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) FindByID(id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) SetRead(id uint, isRead bool) error {
	result := r.db.Model(&model.Contact{}).Where("id = ?", id).Update("is_read", isRead)
	if result.Error != nil {
		logger.Error("Failed to update contact read status", result.Error, map[string]interface{}{
			"contact_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&model.Contact{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (r *contactRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Contact{}, id, "contact")
}
