package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	UserID         uint64         `gorm:"not null;index" json:"user_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Body           string         `gorm:"type:text" json:"body"`
	ReadAt         *time.Time     `json:"read_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
