package repository

import (
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/gorm"
)

// GormNurseryRepository is a GORM implementation of NurseryRepository
type GormNurseryRepository struct {
	db *gorm.DB
}

// NewNurseryRepository creates a new NurseryRepository
func NewNurseryRepository(db *gorm.DB) NurseryRepository {
	return &GormNurseryRepository{db: db}
}

// Create creates a new nursery
func (r *GormNurseryRepository) Create(nursery *models.Nursery) error {
	return r.db.Create(nursery).Error
}

// FindByID finds a nursery by ID
func (r *GormNurseryRepository) FindByID(id uint64) (*models.Nursery, error) {
	var nursery models.Nursery
	if err := r.db.First(&nursery, id).Error; err != nil {
		return nil, err
	}
	return &nursery, nil
}

// FindOwned finds a nursery by ID restricted to an owner and, when given, a tenant.
func (r *GormNurseryRepository) FindOwned(id, createdBy uint64, organizationID *uint64) (*models.Nursery, error) {
	query := r.db.Where("id = ? AND created_by = ?", id, createdBy)
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}

	var nursery models.Nursery
	if err := query.First(&nursery).Error; err != nil {
		return nil, err
	}
	return &nursery, nil
}

// ListOwned lists nurseries owned by a user
func (r *GormNurseryRepository) ListOwned(createdBy uint64, organizationID *uint64, page, limit int) ([]models.Nursery, int64, error) {
	query := r.db.Model(&models.Nursery{}).Where("created_by = ?", createdBy)
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var nurseries []models.Nursery
	if err := query.
		Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&nurseries).Error; err != nil {
		return nil, 0, err
	}
	return nurseries, total, nil
}

// Update updates a nursery
func (r *GormNurseryRepository) Update(nursery *models.Nursery) error {
	return r.db.Save(nursery).Error
}

// Delete soft deletes a nursery
func (r *GormNurseryRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Nursery{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
