package model

import "time"

type Product struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Price       float64    `gorm:"not null;default:0" json:"price"`
	Description string     `gorm:"type:text" json:"description"`
	Sizes       StringList `json:"sizes"`
	Highlights  StringList `json:"highlights"`
	Ingredients StringList `json:"ingredients"`
	Images      StringList `json:"images"`
	CategoryID  uint       `gorm:"index;not null" json:"category_id"`
	IsTopSeller bool       `gorm:"default:false" json:"is_top_seller"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
