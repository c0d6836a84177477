package models

import (
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	UserID      uint64         `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string         `gorm:"type:varchar(100)" json:"display_name"`
	Phone       string         `gorm:"type:varchar(50)" json:"phone"`
	AvatarURL   string         `gorm:"type:varchar(500)" json:"avatar_url"`
	Locale      string         `gorm:"type:varchar(10)" json:"locale"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
