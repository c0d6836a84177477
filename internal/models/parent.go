package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Parent struct {
	ID             uint64                      `gorm:"primarykey" json:"id"`
	OrganizationID uint64                      `gorm:"not null;index" json:"organization_id"`
	UserID         *uint64                     `gorm:"index" json:"user_id"`
	FirstName      string                      `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string                      `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string                      `gorm:"type:varchar(255)" json:"email"`
	Phone          string                      `gorm:"type:varchar(50)" json:"phone"`
	Relationship   string                      `gorm:"type:varchar(50)" json:"relationship"`
	ChildIDs       datatypes.JSONSlice[uint64] `json:"child_ids"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
