package dto

import (
	"time"

	"github.com/sakurakids/nursery-api/internal/models"
)

// NurseryDTO represents a nursery in API responses
type NurseryDTO struct {
	ID             uint64 `json:"id"`
	OrganizationID uint64 `json:"organization_id"`
	Name           string `json:"name"`
}

// ClassDTO represents a class in API responses
type ClassDTO struct {
	ID            uint64      `json:"id"`
	NurseryID     uint64      `json:"nursery_id"`
	Name          string      `json:"name"`
	MainTeacherID *uint64     `json:"main_teacher_id"`
	TeacherIDs    []uint64    `json:"teacher_ids"`
	ChildIDs      []uint64    `json:"child_ids"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Nursery       *NurseryDTO `json:"nursery,omitempty"`
}

// ToNurseryDTO converts a Nursery model to NurseryDTO
func ToNurseryDTO(nursery models.Nursery) NurseryDTO {
	return NurseryDTO{
		ID:             nursery.ID,
		OrganizationID: nursery.OrganizationID,
		Name:           nursery.Name,
	}
}

// ToClassDTO converts a Class model to ClassDTO
func ToClassDTO(class models.Class) ClassDTO {
	dto := ClassDTO{
		ID:            class.ID,
		NurseryID:     class.NurseryID,
		Name:          class.Name,
		MainTeacherID: class.MainTeacherID,
		TeacherIDs:    class.TeacherIDs,
		ChildIDs:      class.ChildIDs,
		CreatedAt:     class.CreatedAt,
		UpdatedAt:     class.UpdatedAt,
	}

	// Include nursery if preloaded
	if class.Nursery.ID != 0 {
		nursery := ToNurseryDTO(class.Nursery)
		dto.Nursery = &nursery
	}

	// Rosters serialize as [] rather than null
	if dto.TeacherIDs == nil {
		dto.TeacherIDs = []uint64{}
	}
	if dto.ChildIDs == nil {
		dto.ChildIDs = []uint64{}
	}

	return dto
}

// ToClassDTOs converts a slice of classes
func ToClassDTOs(classes []models.Class) []ClassDTO {
	dtos := make([]ClassDTO, len(classes))
	for i, class := range classes {
		dtos[i] = ToClassDTO(class)
	}
	return dtos
}
