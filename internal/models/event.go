package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CreatedBy      uint64         `gorm:"not null" json:"created_by"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Location       string         `gorm:"type:varchar(255)" json:"location"`
	StartsAt       time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt         *time.Time     `json:"ends_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
