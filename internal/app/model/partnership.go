package model

import "time"

// CategoryPartnership is the bucket a partner is listed under on the locator page,
// e.g. "Mart" or "Pharmacy".
type CategoryPartnership struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CategoryPartnership) TableName() string {
	return "category_partnerships"
}

// DefaultCategoryPartnershipNames are created on first listing of an empty table.
var DefaultCategoryPartnershipNames = []string{"Mart", "Pharmacy"}

// Partnership is a retail partner stocking the brand.
type Partnership struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	Name                  string    `gorm:"not null" json:"name"`
	Image                 string    `gorm:"not null" json:"image"`
	CategoryPartnershipID uint      `gorm:"index;not null" json:"category_partnership_id"`
	CreatedAt             time.Time `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	CategoryPartnership *CategoryPartnership `gorm:"foreignKey:CategoryPartnershipID" json:"category_partnership,omitempty"`
}

func (Partnership) TableName() string {
	return "partnerships"
}
