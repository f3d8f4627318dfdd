package dto

import "time"

// Request DTOs

type BookAppointmentRequest struct {
	PatientID      string    `json:"patient_id" validate:"required"`
	PractitionerID string    `json:"practitioner_id" validate:"required"`
	ScheduledAt    time.Time `json:"scheduled_at" validate:"required"`
	Reason         string    `json:"reason" validate:"omitempty,max=500"`
}

type RescheduleAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	PractitionerID string    `json:"practitioner_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// CancelAppointmentResponse reports whether the call changed state; a
// repeated cancel returns Changed=false.
type CancelAppointmentResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Changed     bool                `json:"changed"`
}
