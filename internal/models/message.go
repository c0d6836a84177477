package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	ConversationID uint64         `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint64         `gorm:"not null;index" json:"sender_id"`
	Body           string         `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	Sender       User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receipts     []Receipt    `gorm:"foreignKey:MessageID" json:"receipts,omitempty"`
}
