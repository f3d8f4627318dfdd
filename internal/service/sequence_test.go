package service

import (
	"context"
	"testing"

	"go-medical-scheduling/internal/domain/entity"
	"go-medical-scheduling/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequence(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		seed     int64
		existing []string
		want     []string
	}{
		{"empty starts at seed", "P", 1000, nil, []string{"P1000", "P1001"}},
		{"continues after max", "P", 1000, []string{"P1001", "P1002"}, []string{"P1003"}},
		{"max is numeric not lexical", "A", 5000, []string{"A999", "A10000", "A5001"}, []string{"A10001"}},
		{"skips malformed ids", "R", 3000, []string{"R3004", "Rabc", "R", "X9999", "R12a"}, []string{"R3005"}},
		{"only malformed ids falls back to seed", "D", 1, []string{"Dx", "doctor"}, []string{"D1", "D2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSequence(tt.prefix, tt.seed, tt.existing)
			for _, want := range tt.want {
				assert.Equal(t, want, seq.Next())
			}
		})
	}
}

func TestLoadSequence(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore[entity.Patient]()
	require.NoError(t, store.Save(ctx, entity.Patient{ID: "P1001"}))
	require.NoError(t, store.Save(ctx, entity.Patient{ID: "P1002"}))

	seq, err := LoadSequence[entity.Patient](ctx, store, PatientIDPrefix, PatientIDSeed)
	require.NoError(t, err)
	assert.Equal(t, "P1003", seq.Next())
}

func TestNextID_RescansStoreEachCall(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore[entity.Appointment]()

	id, err := NextID[entity.Appointment](ctx, store, AppointmentIDPrefix, AppointmentIDSeed)
	require.NoError(t, err)
	assert.Equal(t, "A5000", id)

	// written by someone else sharing the store
	require.NoError(t, store.Save(ctx, entity.Appointment{ID: "A5000"}))
	id, err = NextID[entity.Appointment](ctx, store, AppointmentIDPrefix, AppointmentIDSeed)
	require.NoError(t, err)
	assert.Equal(t, "A5001", id)

	id, err = NextID[entity.Appointment](ctx, store, AppointmentIDPrefix, AppointmentIDSeed, "A5003", "")
	require.NoError(t, err)
	assert.Equal(t, "A5004", id)
}
