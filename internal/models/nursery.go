package models

import (
	"time"

	"gorm.io/gorm"
)

type Nursery struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CreatedBy      uint64         `gorm:"not null;index" json:"created_by"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Address        string         `gorm:"type:varchar(500)" json:"address"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Classes      []Class      `gorm:"foreignKey:NurseryID" json:"classes,omitempty"`
}
