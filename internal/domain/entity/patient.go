package entity

import "time"

// Patient represents a patient profile. AppointmentIDs and HealthRecordIDs
// are a denormalized convenience view; the appointment ledger is the source
// of truth for appointment state.
type Patient struct {
	ID              string    `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Age             int       `gorm:"not null" json:"age"`
	Gender          string    `gorm:"type:varchar(20);not null" json:"gender"`
	Contact         string    `gorm:"type:char(10);not null;index" json:"contact"`
	AppointmentIDs  []string  `gorm:"type:jsonb;serializer:json" json:"appointment_ids"`
	HealthRecordIDs []string  `gorm:"type:jsonb;serializer:json" json:"health_record_ids"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p Patient) Key() string {
	return p.ID
}

func (p Patient) Clone() Patient {
	c := p
	if p.AppointmentIDs != nil {
		c.AppointmentIDs = append([]string(nil), p.AppointmentIDs...)
	}
	if p.HealthRecordIDs != nil {
		c.HealthRecordIDs = append([]string(nil), p.HealthRecordIDs...)
	}
	return c
}

// HasAppointment checks the back-reference list for appointmentID
func (p Patient) HasAppointment(appointmentID string) bool {
	for _, id := range p.AppointmentIDs {
		if id == appointmentID {
			return true
		}
	}
	return false
}

// AddAppointment appends appointmentID unless it is already referenced
func (p *Patient) AddAppointment(appointmentID string) {
	if !p.HasAppointment(appointmentID) {
		p.AppointmentIDs = append(p.AppointmentIDs, appointmentID)
	}
}

// AddHealthRecord appends recordID to the back-reference list
func (p *Patient) AddHealthRecord(recordID string) {
	for _, id := range p.HealthRecordIDs {
		if id == recordID {
			return
		}
	}
	p.HealthRecordIDs = append(p.HealthRecordIDs, recordID)
}
