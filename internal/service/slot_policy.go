package service

import (
	"fmt"
	"time"

	"go-medical-scheduling/config"
	"go-medical-scheduling/internal/domain/entity"
)

// SlotPolicy produces the initial availability of a newly registered
// practitioner that was registered without explicit slots.
type SlotPolicy interface {
	DefaultSlots(now time.Time) []time.Time
}

// HourlySlotPolicy opens one slot per hour from StartHour (inclusive) to
// EndHour (exclusive) on each of the next DaysAhead calendar days, counting
// today, in Location. Only starts after now are returned.
type HourlySlotPolicy struct {
	Location  *time.Location
	StartHour int
	EndHour   int
	DaysAhead int
}

func (p HourlySlotPolicy) DefaultSlots(now time.Time) []time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	slots := make([]time.Time, 0, p.DaysAhead*(p.EndHour-p.StartHour))
	for d := 0; d < p.DaysAhead; d++ {
		for h := p.StartHour; h < p.EndHour; h++ {
			t := time.Date(local.Year(), local.Month(), local.Day()+d, h, 0, 0, 0, loc)
			if t.After(now) {
				slots = append(slots, entity.NormalizeSlot(t))
			}
		}
	}
	return slots
}

// NoSlotPolicy leaves new practitioners without availability
type NoSlotPolicy struct{}

func (NoSlotPolicy) DefaultSlots(time.Time) []time.Time {
	return nil
}

func NewSlotPolicy(cfg config.SchedulingConfig, loc *time.Location) (SlotPolicy, error) {
	switch cfg.SlotPolicy {
	case config.SlotPolicyHourly:
		return HourlySlotPolicy{
			Location:  loc,
			StartHour: cfg.DayStartHour,
			EndHour:   cfg.DayEndHour,
			DaysAhead: cfg.DaysAhead,
		}, nil
	case config.SlotPolicyNone:
		return NoSlotPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown slot policy %q", cfg.SlotPolicy)
}
