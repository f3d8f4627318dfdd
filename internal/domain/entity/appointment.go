package entity

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "BOOKED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment represents a claimed practitioner slot
type Appointment struct {
	ID             string            `gorm:"type:varchar(32);primaryKey" json:"id"`
	PatientID      string            `gorm:"type:varchar(32);not null;index" json:"patient_id"`
	PractitionerID string            `gorm:"type:varchar(32);not null;index" json:"practitioner_id"`
	ScheduledAt    time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Reason         string            `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a Appointment) Key() string {
	return a.ID
}

func (a Appointment) Clone() Appointment {
	return a
}

// IsBooked checks if the appointment still holds its slot
func (a Appointment) IsBooked() bool {
	return a.Status == AppointmentStatusBooked
}

// IsCancelled checks if appointment is cancelled
func (a Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if appointment is completed
func (a Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// Complete changes appointment status to completed
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}

// Before orders appointments by scheduled time, then by ID.
func (a Appointment) Before(b Appointment) bool {
	if !a.ScheduledAt.Equal(b.ScheduledAt) {
		return a.ScheduledAt.Before(b.ScheduledAt)
	}
	return LessID(a.ID, b.ID)
}

// LessID compares generated IDs so that A999 sorts before A1000. IDs of
// equal length compare lexically.
func LessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
