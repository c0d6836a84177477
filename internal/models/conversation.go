package models

import (
	"time"

	"gorm.io/gorm"
)

type Conversation struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Title          string         `gorm:"type:varchar(255)" json:"title"`
	CreatedBy      uint64         `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members  []ChatMember `gorm:"foreignKey:ConversationID" json:"members,omitempty"`
	Messages []Message    `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}
