package entity

import "time"

// HealthRecord represents a single visit note written by a practitioner
type HealthRecord struct {
	ID             string    `gorm:"type:varchar(32);primaryKey" json:"id"`
	PatientID      string    `gorm:"type:varchar(32);not null;index" json:"patient_id"`
	PractitionerID string    `gorm:"type:varchar(32);not null;index" json:"practitioner_id"`
	RecordedAt     time.Time `gorm:"not null;index" json:"recorded_at"`
	Symptoms       string    `gorm:"type:text;not null" json:"symptoms"`
	Diagnosis      string    `gorm:"type:text;not null" json:"diagnosis"`
	Prescription   string    `gorm:"type:text" json:"prescription,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (HealthRecord) TableName() string {
	return "health_records"
}

func (r HealthRecord) Key() string {
	return r.ID
}

func (r HealthRecord) Clone() HealthRecord {
	return r
}
