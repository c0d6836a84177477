package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Integration struct {
	ID             uint64            `gorm:"primarykey" json:"id"`
	OrganizationID uint64            `gorm:"not null;index" json:"organization_id"`
	Provider       string            `gorm:"type:varchar(100);not null" json:"provider"`
	Settings       datatypes.JSONMap `gorm:"type:jsonb" json:"settings,omitempty"`
	Secret         string            `gorm:"type:varchar(64);not null" json:"secret"`
	Enabled        bool              `gorm:"not null;default:true" json:"enabled"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
