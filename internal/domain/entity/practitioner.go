package entity

import (
	"sort"
	"time"
)

// Practitioner represents a bookable resource and its available-slot set.
// A time present in Slots is not claimed by any booked appointment for the
// practitioner, and a claimed time is never present in Slots.
type Practitioner struct {
	ID        string      `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Specialty string      `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Slots     []time.Time `gorm:"type:jsonb;serializer:json" json:"slots"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Practitioner) TableName() string {
	return "practitioners"
}

func (p Practitioner) Key() string {
	return p.ID
}

// Clone returns a copy that shares no slot storage with p.
func (p Practitioner) Clone() Practitioner {
	c := p
	if p.Slots != nil {
		c.Slots = append([]time.Time(nil), p.Slots...)
	}
	return c
}

// NormalizeSlot maps a time point to its canonical slot key: UTC, whole
// seconds, no monotonic reading.
func NormalizeSlot(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// HasSlot checks if t is currently bookable
func (p Practitioner) HasSlot(t time.Time) bool {
	_, ok := p.slotIndex(t)
	return ok
}

// RemoveSlot removes t from the set and reports whether it was present
func (p *Practitioner) RemoveSlot(t time.Time) bool {
	i, ok := p.slotIndex(t)
	if !ok {
		return false
	}
	p.Slots = append(p.Slots[:i], p.Slots[i+1:]...)
	return true
}

// AddSlot adds t to the set. Adding a present slot is a no-op.
func (p *Practitioner) AddSlot(t time.Time) {
	t = NormalizeSlot(t)
	if p.HasSlot(t) {
		return
	}
	i := sort.Search(len(p.Slots), func(i int) bool { return !p.Slots[i].Before(t) })
	p.Slots = append(p.Slots, time.Time{})
	copy(p.Slots[i+1:], p.Slots[i:])
	p.Slots[i] = t
}

// SetSlots replaces the set with the distinct, normalized values of slots.
func (p *Practitioner) SetSlots(slots []time.Time) {
	p.Slots = make([]time.Time, 0, len(slots))
	for _, t := range slots {
		p.AddSlot(t)
	}
}

func (p Practitioner) slotIndex(t time.Time) (int, bool) {
	t = NormalizeSlot(t)
	for i, s := range p.Slots {
		if s.Equal(t) {
			return i, true
		}
	}
	return -1, false
}
