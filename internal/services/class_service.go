package services

import (
	"errors"
	"fmt"

	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrNurseryNotFound covers both a missing nursery and one the caller does
	// not own; the two cases are indistinguishable on purpose.
	ErrNurseryNotFound = errors.New("nursery not found")
	// ErrAmbiguousNursery is returned when nursery_id is omitted and the caller
	// owns more than one nursery.
	ErrAmbiguousNursery = errors.New("multiple nurseries found, nursery_id is required")
	ErrClassNotFound    = errors.New("class not found")
)

// ClassService owns the class-under-nursery rules: resolving the parent nursery
// on create and re-verifying ownership on every mutation.
type ClassService struct {
	classRepo   repository.ClassRepository
	nurseryRepo repository.NurseryRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo repository.ClassRepository, nurseryRepo repository.NurseryRepository) *ClassService {
	return &ClassService{
		classRepo:   classRepo,
		nurseryRepo: nurseryRepo,
	}
}

// Actor identifies the caller for ownership checks.
type Actor struct {
	UserID         uint64
	OrganizationID *uint64
}

// CreateClassInput holds the caller-supplied class fields.
type CreateClassInput struct {
	NurseryID     *uint64
	Name          string
	MainTeacherID *uint64
	TeacherIDs    []uint64
	ChildIDs      []uint64
}

// CreateClass resolves the parent nursery and inserts the class. The resolution
// and the insert share one transaction.
//
// With an explicit nursery_id the nursery must exist and be owned by the actor.
// Without one, a single owned nursery is picked automatically; zero owned
// nurseries is ErrNurseryNotFound and several is ErrAmbiguousNursery.
func (s *ClassService) CreateClass(actor Actor, input CreateClassInput) (*models.Class, error) {
	class := &models.Class{
		Name:          input.Name,
		MainTeacherID: input.MainTeacherID,
		TeacherIDs:    input.TeacherIDs,
		ChildIDs:      input.ChildIDs,
	}

	err := s.classRepo.CreateResolved(class, func(nurseries repository.NurseryRepository) (*models.Nursery, error) {
		if input.NurseryID != nil {
			nursery, err := nurseries.FindOwned(*input.NurseryID, actor.UserID, actor.OrganizationID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrNurseryNotFound
				}
				return nil, fmt.Errorf("failed to verify nursery: %w", err)
			}
			return nursery, nil
		}

		// Two rows are enough to tell one owned nursery from several.
		owned, total, err := nurseries.ListOwned(actor.UserID, actor.OrganizationID, 1, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to list nurseries: %w", err)
		}

		switch total {
		case 0:
			return nil, ErrNurseryNotFound
		case 1:
			return &owned[0], nil
		default:
			return nil, ErrAmbiguousNursery
		}
	})
	if err != nil {
		return nil, err
	}

	return class, nil
}

// GetClass loads a class through the ownership join.
func (s *ClassService) GetClass(actor Actor, id uint64) (*models.Class, error) {
	class, err := s.classRepo.FindOwned(id, actor.UserID, actor.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to find class: %w", err)
	}
	return class, nil
}

// ListClasses lists classes under the actor's nurseries.
func (s *ClassService) ListClasses(actor Actor, page, limit int) ([]models.Class, int64, error) {
	return s.classRepo.ListOwned(actor.UserID, actor.OrganizationID, page, limit)
}

// UpdateClassInput holds the patchable class fields. Nil means "not sent".
type UpdateClassInput struct {
	NurseryID        *uint64
	Name             *string
	MainTeacherID    *uint64
	ClearMainTeacher bool
	TeacherIDs       *[]uint64
	ChildIDs         *[]uint64
}

// UpdateClass applies a partial update after re-verifying ownership. A new
// nursery_id is checked against the actor before re-parenting.
func (s *ClassService) UpdateClass(actor Actor, id uint64, input UpdateClassInput) (*models.Class, error) {
	class, err := s.GetClass(actor, id)
	if err != nil {
		return nil, err
	}

	if input.NurseryID != nil && *input.NurseryID != class.NurseryID {
		// Re-parenting: the target nursery must also belong to the actor.
		if _, err := s.nurseryRepo.FindOwned(*input.NurseryID, actor.UserID, actor.OrganizationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNurseryNotFound
			}
			return nil, fmt.Errorf("failed to verify nursery: %w", err)
		}
		class.NurseryID = *input.NurseryID
	}

	if input.Name != nil {
		class.Name = *input.Name
	}
	if input.ClearMainTeacher {
		class.MainTeacherID = nil
	} else if input.MainTeacherID != nil {
		class.MainTeacherID = input.MainTeacherID
	}
	if input.TeacherIDs != nil {
		class.TeacherIDs = *input.TeacherIDs
	}
	if input.ChildIDs != nil {
		class.ChildIDs = *input.ChildIDs
	}

	if err := s.classRepo.Update(class); err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}
	return class, nil
}

// DeleteClass removes a class after re-verifying ownership.
func (s *ClassService) DeleteClass(actor Actor, id uint64) error {
	if _, err := s.GetClass(actor, id); err != nil {
		return err
	}

	if err := s.classRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return fmt.Errorf("failed to delete class: %w", err)
	}
	return nil
}
