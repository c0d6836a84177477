package models

import (
	"time"

	"gorm.io/gorm"
)

type Child struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	FirstName      string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string         `gorm:"type:varchar(100);not null" json:"last_name"`
	BirthDate      *time.Time     `json:"birth_date"`
	Gender         string         `gorm:"type:varchar(20)" json:"gender"`
	Allergies      string         `gorm:"type:text" json:"allergies"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Payments     []Payment    `gorm:"foreignKey:ChildID" json:"payments,omitempty"`
}
