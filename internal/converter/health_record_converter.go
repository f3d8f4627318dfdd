package converter

import (
	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/domain/entity"
)

// HealthRecordToResponse converts a HealthRecord entity to HealthRecordResponse DTO
func HealthRecordToResponse(record *entity.HealthRecord) *dto.HealthRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.HealthRecordResponse{
		ID:             record.ID,
		PatientID:      record.PatientID,
		PractitionerID: record.PractitionerID,
		RecordedAt:     record.RecordedAt,
		Symptoms:       record.Symptoms,
		Diagnosis:      record.Diagnosis,
		Prescription:   record.Prescription,
		CreatedAt:      record.CreatedAt,
	}
}

func HealthRecordsToResponses(records []entity.HealthRecord) []dto.HealthRecordResponse {
	responses := make([]dto.HealthRecordResponse, len(records))
	for i := range records {
		responses[i] = *HealthRecordToResponse(&records[i])
	}
	return responses
}
