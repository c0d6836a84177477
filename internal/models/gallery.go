package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GalleryType string

const (
	GalleryTypeChild GalleryType = "child"
	GalleryTypeClass GalleryType = "class"
	GalleryTypeEvent GalleryType = "event"
)

// Gallery images are uploaded elsewhere; rows only store their URLs. The
// child/class/event references are bare ids with no FK.
type Gallery struct {
	ID             uint64                      `gorm:"primarykey" json:"id"`
	OrganizationID uint64                      `gorm:"not null;index" json:"organization_id"`
	CreatedBy      uint64                      `gorm:"not null" json:"created_by"`
	Title          string                      `gorm:"type:varchar(255)" json:"title"`
	Type           GalleryType                 `gorm:"type:varchar(20);not null" json:"type"`
	Images         datatypes.JSONSlice[string] `json:"images"`
	ChildID        *uint64                     `json:"child_id"`
	ClassID        *uint64                     `json:"class_id"`
	EventID        *uint64                     `json:"event_id"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`

	// Relations
	Comments []Comment  `gorm:"foreignKey:GalleryID" json:"comments,omitempty"`
	Likes    []PostLike `gorm:"foreignKey:GalleryID" json:"likes,omitempty"`
}
