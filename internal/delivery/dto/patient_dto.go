package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Age     int    `json:"age" validate:"gte=1,lte=150"`
	Gender  string `json:"gender" validate:"required,max=20"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
}

type UpdatePatientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Age     int    `json:"age" validate:"gte=1,lte=150"`
	Gender  string `json:"gender" validate:"required,max=20"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
}

// Response DTOs

type PatientResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	Contact         string    `json:"contact"`
	AppointmentIDs  []string  `json:"appointment_ids"`
	HealthRecordIDs []string  `json:"health_record_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
