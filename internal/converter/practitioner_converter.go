package converter

import (
	"time"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/domain/entity"
)

// PractitionerToResponse converts a Practitioner entity to PractitionerResponse DTO
func PractitionerToResponse(practitioner *entity.Practitioner) *dto.PractitionerResponse {
	if practitioner == nil {
		return nil
	}

	slots := make([]time.Time, len(practitioner.Slots))
	copy(slots, practitioner.Slots)

	return &dto.PractitionerResponse{
		ID:             practitioner.ID,
		Name:           practitioner.Name,
		Specialty:      practitioner.Specialty,
		Slots:          slots,
		AvailableSlots: len(slots),
		CreatedAt:      practitioner.CreatedAt,
		UpdatedAt:      practitioner.UpdatedAt,
	}
}

// PractitionersToResponses converts a slice of Practitioner entities to slice of PractitionerResponse DTOs
func PractitionersToResponses(practitioners []entity.Practitioner) []dto.PractitionerResponse {
	responses := make([]dto.PractitionerResponse, len(practitioners))
	for i := range practitioners {
		responses[i] = *PractitionerToResponse(&practitioners[i])
	}
	return responses
}
