package usecase

import (
	"context"
	"testing"
	"time"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/repository"
	"go-medical-scheduling/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPractitionerUsecase_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.practitioners.Register(ctx, &dto.CreatePractitionerRequest{Name: " ", Specialty: "Cardiology"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.practitioners.Register(ctx, &dto.CreatePractitionerRequest{Name: "Dr. A", Specialty: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.practitioners.Register(ctx, &dto.CreatePractitionerRequest{
		Name: "Dr. A", Specialty: "Cardiology", Slots: []time.Time{time.Now().Add(-time.Hour)},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPractitionerUsecase_RegisterWithSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	later := futureSlot(2, 14)
	earlier := futureSlot(2, 10)

	resp, err := f.practitioners.Register(ctx, &dto.CreatePractitionerRequest{
		Name: "Dr. A", Specialty: "Cardiology", Slots: []time.Time{later, earlier, later},
	})
	require.NoError(t, err)
	assert.Equal(t, "D1", resp.ID)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Equal(earlier))
	assert.True(t, resp.Slots[1].Equal(later))
}

func TestPractitionerUsecase_RegisterUsesSlotPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWithStores(t, repository.NewMemoryStores(), service.HourlySlotPolicy{
		Location: time.UTC, StartHour: 9, EndHour: 17, DaysAhead: 30,
	})
	now := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)
	f.setClock(now)

	resp, err := f.practitioners.Register(ctx, &dto.CreatePractitionerRequest{Name: "Dr. B", Specialty: "Dermatology"})
	require.NoError(t, err)
	assert.Equal(t, 30*8, resp.AvailableSlots)
	assert.True(t, resp.Slots[0].Equal(time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)))
}

func TestPractitionerUsecase_SlotOperations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot := futureSlot(1, 9)
	id := f.registerPractitioner(t, "Dr. A", slot)

	has, err := f.practitioners.HasSlot(ctx, id, slot)
	require.NoError(t, err)
	assert.True(t, has)

	// equal instants in another zone refer to the same slot
	jakarta := time.FixedZone("WIB", 7*3600)
	has, err = f.practitioners.HasSlot(ctx, id, slot.In(jakarta))
	require.NoError(t, err)
	assert.True(t, has)

	removed, err := f.practitioners.RemoveSlot(ctx, id, slot)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.practitioners.RemoveSlot(ctx, id, slot)
	require.NoError(t, err)
	assert.False(t, removed)

	resp, err := f.practitioners.AddSlot(ctx, id, slot)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AvailableSlots)

	resp, err = f.practitioners.AddSlot(ctx, id, slot)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AvailableSlots)

	_, err = f.practitioners.HasSlot(ctx, "D404", slot)
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestPractitionerUsecase_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 11; i++ {
		f.registerPractitioner(t, "Dr. X", futureSlot(1, 9))
	}

	list, err := f.practitioners.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 11, list.Total)
	assert.Equal(t, "D1", list.Practitioners[0].ID)
	assert.Equal(t, "D2", list.Practitioners[1].ID)
	assert.Equal(t, "D11", list.Practitioners[10].ID)
}
