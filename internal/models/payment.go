package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	ChildID        uint64         `gorm:"not null;index" json:"child_id"`
	Amount         int64          `gorm:"not null;check:amount >= 0" json:"amount"`
	Currency       string         `gorm:"type:varchar(8);not null;default:'IDR'" json:"currency"`
	Status         PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Description    string         `gorm:"type:varchar(500)" json:"description"`
	PaidAt         *time.Time     `json:"paid_at"`
	OrderID        *string        `gorm:"type:varchar(64);uniqueIndex" json:"order_id,omitempty"`
	CheckoutURL    *string        `gorm:"type:varchar(500)" json:"checkout_url,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Child        Child        `gorm:"foreignKey:ChildID" json:"child,omitempty"`
}
