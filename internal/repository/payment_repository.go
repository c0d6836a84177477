package repository

import (
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/gorm"
)

// GormPaymentRepository is a GORM implementation of PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create creates a new payment
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(id uint64) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("Child").First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// List lists payments in one tenant
func (r *GormPaymentRepository) List(organizationID uint64, childID *uint64, status *models.PaymentStatus, page, limit int) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{}).Where("organization_id = ?", organizationID)
	if childID != nil {
		query = query.Where("child_id = ?", *childID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Update updates a payment
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// Delete soft deletes a payment
func (r *GormPaymentRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Payment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
