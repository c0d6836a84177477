package models

import (
	"time"

	"gorm.io/gorm"
)

type CallStatus string

const (
	CallStatusRinging CallStatus = "ringing"
	CallStatusActive  CallStatus = "active"
	CallStatusEnded   CallStatus = "ended"
	CallStatusMissed  CallStatus = "missed"
)

type Call struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	ConversationID uint64         `gorm:"not null;index" json:"conversation_id"`
	CallerID       uint64         `gorm:"not null;index" json:"caller_id"`
	Status         CallStatus     `gorm:"type:varchar(20);not null;default:'ringing'" json:"status"`
	StartedAt      *time.Time     `json:"started_at"`
	EndedAt        *time.Time     `json:"ended_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	Caller       User         `gorm:"foreignKey:CallerID" json:"caller,omitempty"`
}
