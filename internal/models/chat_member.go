package models

import "time"

// ChatMember is addressed by its natural key (conversation_id, user_id).
type ChatMember struct {
	ConversationID uint64    `gorm:"primarykey" json:"conversation_id"`
	UserID         uint64    `gorm:"primarykey" json:"user_id"`
	JoinedAt       time.Time `json:"joined_at"`

	// Relations
	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
