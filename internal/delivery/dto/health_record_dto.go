package dto

import "time"

// Request DTOs

type CreateHealthRecordRequest struct {
	PatientID      string     `json:"patient_id" validate:"required"`
	PractitionerID string     `json:"practitioner_id" validate:"required"`
	RecordedAt     *time.Time `json:"recorded_at,omitempty"` // defaults to now
	Symptoms       string     `json:"symptoms" validate:"required"`
	Diagnosis      string     `json:"diagnosis" validate:"required"`
	Prescription   string     `json:"prescription,omitempty"`
}

// Response DTOs

type HealthRecordResponse struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	PractitionerID string    `json:"practitioner_id"`
	RecordedAt     time.Time `json:"recorded_at"`
	Symptoms       string    `json:"symptoms"`
	Diagnosis      string    `json:"diagnosis"`
	Prescription   string    `json:"prescription,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type HealthRecordListResponse struct {
	Records []HealthRecordResponse `json:"records"`
	Total   int                    `json:"total"`
}
