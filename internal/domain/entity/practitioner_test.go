package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func practitionerWith(slots ...time.Time) Practitioner {
	p := Practitioner{ID: "D1"}
	p.SetSlots(slots)
	return p
}

func TestPractitioner_SlotSetOperations(t *testing.T) {
	ten := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	nine := ten.Add(-time.Hour)

	// readers work on values returned straight from a call
	assert.True(t, practitionerWith(ten).HasSlot(ten))
	assert.True(t, practitionerWith(ten).HasSlot(ten.In(time.FixedZone("WIB", 7*3600))))
	assert.False(t, practitionerWith(ten).HasSlot(nine))

	p := practitionerWith(ten, ten, nine)
	assert.Equal(t, []time.Time{nine, ten}, p.Slots)

	p.AddSlot(ten.Add(500 * time.Millisecond))
	assert.Len(t, p.Slots, 2)

	assert.True(t, p.RemoveSlot(nine))
	assert.False(t, p.RemoveSlot(nine))
	assert.Equal(t, []time.Time{ten}, p.Slots)
}

func TestAppointmentAndPatient_ReadersOnValues(t *testing.T) {
	booked := func() Appointment { return Appointment{ID: "A5000", Status: AppointmentStatusBooked} }
	assert.True(t, booked().IsBooked())
	assert.False(t, booked().IsCancelled())
	assert.False(t, booked().IsCompleted())

	patient := func() Patient { return Patient{ID: "P1000", AppointmentIDs: []string{"A5000"}} }
	assert.True(t, patient().HasAppointment("A5000"))
	assert.False(t, patient().HasAppointment("A5001"))
}
