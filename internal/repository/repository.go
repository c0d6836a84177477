package repository

import (
	"github.com/sakurakids/nursery-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithPersonalOrganization creates a user, their personal organization,
	// and corresponding membership within a single transaction.
	CreateWithPersonalOrganization(user *models.User, org *models.Organization, member *models.OrganizationMember) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// NurseryRepository defines the interface for nursery data access
type NurseryRepository interface {
	// Create creates a new nursery
	Create(nursery *models.Nursery) error

	// FindByID finds a nursery by ID
	FindByID(id uint64) (*models.Nursery, error)

	// FindOwned finds a nursery by ID restricted to an owner (and optionally a tenant)
	FindOwned(id, createdBy uint64, organizationID *uint64) (*models.Nursery, error)

	// ListOwned lists nurseries owned by a user (and optionally scoped to a tenant)
	ListOwned(createdBy uint64, organizationID *uint64, page, limit int) ([]models.Nursery, int64, error)

	// Update updates a nursery
	Update(nursery *models.Nursery) error

	// Delete soft deletes a nursery
	Delete(id uint64) error
}

// ClassRepository defines the interface for class data access
type ClassRepository interface {
	// Create creates a new class
	Create(class *models.Class) error

	// CreateResolved resolves the parent nursery and inserts the class in one transaction
	CreateResolved(class *models.Class, resolve func(tx NurseryRepository) (*models.Nursery, error)) error

	// FindOwned finds a class by ID through the ownership join on its nursery
	FindOwned(id, createdBy uint64, organizationID *uint64) (*models.Class, error)

	// ListOwned lists classes under nurseries owned by a user
	ListOwned(createdBy uint64, organizationID *uint64, page, limit int) ([]models.Class, int64, error)

	// Update updates a class
	Update(class *models.Class) error

	// Delete soft deletes a class
	Delete(id uint64) error
}

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	// Create creates a new payment
	Create(payment *models.Payment) error

	// FindByID finds a payment by ID
	FindByID(id uint64) (*models.Payment, error)

	// List lists payments in one tenant, optionally filtered by child and status
	List(organizationID uint64, childID *uint64, status *models.PaymentStatus, page, limit int) ([]models.Payment, int64, error)

	// Update updates a payment
	Update(payment *models.Payment) error

	// Delete soft deletes a payment
	Delete(id uint64) error
}
