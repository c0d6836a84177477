package repository

import (
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/gorm"
)

// GormClassRepository is a GORM implementation of ClassRepository
type GormClassRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &GormClassRepository{db: db}
}

// Create creates a new class
func (r *GormClassRepository) Create(class *models.Class) error {
	return r.db.Create(class).Error
}

// CreateResolved runs the nursery resolution callback and the insert inside one
// transaction, so the ownership check and the write cannot race.
func (r *GormClassRepository) CreateResolved(class *models.Class, resolve func(tx NurseryRepository) (*models.Nursery, error)) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		nursery, err := resolve(NewNurseryRepository(tx))
		if err != nil {
			return err
		}

		class.NurseryID = nursery.ID
		return tx.Create(class).Error
	})
}

// FindOwned finds a class through the ownership join on its nursery.
func (r *GormClassRepository) FindOwned(id, createdBy uint64, organizationID *uint64) (*models.Class, error) {
	query := r.db.
		Preload("Nursery").
		Joins("JOIN nurseries ON nurseries.id = classes.nursery_id").
		Where("classes.id = ? AND nurseries.created_by = ?", id, createdBy)
	if organizationID != nil {
		query = query.Where("nurseries.organization_id = ?", *organizationID)
	}

	var class models.Class
	if err := query.First(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

// ListOwned lists classes under nurseries owned by a user
func (r *GormClassRepository) ListOwned(createdBy uint64, organizationID *uint64, page, limit int) ([]models.Class, int64, error) {
	query := r.db.
		Model(&models.Class{}).
		Joins("JOIN nurseries ON nurseries.id = classes.nursery_id").
		Where("nurseries.created_by = ?", createdBy)
	if organizationID != nil {
		query = query.Where("nurseries.organization_id = ?", *organizationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []models.Class
	if err := query.
		Preload("Nursery").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&classes).Error; err != nil {
		return nil, 0, err
	}
	return classes, total, nil
}

// Update updates a class
func (r *GormClassRepository) Update(class *models.Class) error {
	return r.db.Save(class).Error
}

// Delete soft deletes a class
func (r *GormClassRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Class{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
