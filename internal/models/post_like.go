package models

import "time"

// PostLike is addressed by its natural key (gallery_id, user_id).
type PostLike struct {
	GalleryID uint64    `gorm:"primarykey" json:"gallery_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Gallery Gallery `gorm:"foreignKey:GalleryID" json:"gallery,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
