package service

import (
	"testing"
	"time"

	"go-medical-scheduling/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlySlotPolicy(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	policy := HourlySlotPolicy{Location: jakarta, StartHour: 9, EndHour: 17, DaysAhead: 2}

	// 11:30 local on day one: 12:00..16:00 today plus a full day tomorrow
	now := time.Date(2030, 1, 10, 11, 30, 0, 0, jakarta)
	slots := policy.DefaultSlots(now)

	require.Len(t, slots, 5+8)
	assert.True(t, slots[0].Equal(time.Date(2030, 1, 10, 12, 0, 0, 0, jakarta)))
	assert.True(t, slots[len(slots)-1].Equal(time.Date(2030, 1, 11, 16, 0, 0, 0, jakarta)))
	for i, s := range slots {
		assert.Equal(t, time.UTC, s.Location())
		assert.True(t, s.After(now))
		if i > 0 {
			assert.True(t, slots[i-1].Before(s))
		}
	}
}

func TestNewSlotPolicy(t *testing.T) {
	p, err := NewSlotPolicy(config.SchedulingConfig{SlotPolicy: config.SlotPolicyNone}, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, p.DefaultSlots(time.Now()))

	p, err = NewSlotPolicy(config.SchedulingConfig{
		SlotPolicy: config.SlotPolicyHourly, DayStartHour: 9, DayEndHour: 17, DaysAhead: 30,
	}, time.UTC)
	require.NoError(t, err)
	assert.NotEmpty(t, p.DefaultSlots(time.Now()))

	_, err = NewSlotPolicy(config.SchedulingConfig{SlotPolicy: "weekly"}, time.UTC)
	assert.Error(t, err)
}
