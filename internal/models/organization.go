package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Organization struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	Name      string            `gorm:"type:varchar(255);not null" json:"name"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Members   []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Nurseries []Nursery            `gorm:"foreignKey:OrganizationID" json:"nurseries,omitempty"`
}
