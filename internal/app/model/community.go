package model

import "time"

// Community is a single gallery photo.
type Community struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Image     string    `gorm:"not null" json:"image"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Community) TableName() string {
	return "communities"
}
