package entity

import "time"

// IntentKind names the multi-entity write an intent guards
type IntentKind string

const (
	IntentKindBook       IntentKind = "book"
	IntentKindCancel     IntentKind = "cancel"
	IntentKindReschedule IntentKind = "reschedule"
)

// Intent is a write-ahead record of an allocator operation that touches more
// than one entity. It exists only while the operation is in flight; a
// persisted intent found at startup marks an interrupted write sequence.
type Intent struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	Kind           IntentKind `gorm:"type:varchar(20);not null" json:"kind"`
	AppointmentID  string     `gorm:"type:varchar(32);not null" json:"appointment_id"`
	PatientID      string     `gorm:"type:varchar(32)" json:"patient_id,omitempty"`
	PractitionerID string     `gorm:"type:varchar(32);not null" json:"practitioner_id"`
	OldTime        time.Time  `json:"old_time,omitempty"`
	NewTime        time.Time  `json:"new_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Intent) TableName() string {
	return "allocation_intents"
}

func (i Intent) Key() string {
	return i.ID
}

func (i Intent) Clone() Intent {
	return i
}
