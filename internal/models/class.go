package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Class rosters are stored as id arrays rather than join tables. Membership is
// not FK-enforced; that is a property of the data model, not an accident.
type Class struct {
	ID            uint64                      `gorm:"primarykey" json:"id"`
	NurseryID     uint64                      `gorm:"not null;index" json:"nursery_id"`
	Name          string                      `gorm:"type:varchar(255);not null" json:"name"`
	MainTeacherID *uint64                     `json:"main_teacher_id"`
	TeacherIDs    datatypes.JSONSlice[uint64] `json:"teacher_ids"`
	ChildIDs      datatypes.JSONSlice[uint64] `json:"child_ids"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `gorm:"index" json:"-"`

	// Relations
	Nursery Nursery `gorm:"foreignKey:NurseryID" json:"nursery,omitempty"`
}
