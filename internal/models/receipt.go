package models

import "time"

// Receipt is addressed by its natural key (message_id, user_id). A second read
// of the same message updates ReadAt instead of inserting a duplicate.
type Receipt struct {
	MessageID uint64    `gorm:"primarykey" json:"message_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	ReadAt    time.Time `json:"read_at"`

	// Relations
	Message Message `gorm:"foreignKey:MessageID" json:"message,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
