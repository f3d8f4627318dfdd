package usecase

import (
	"context"
	"testing"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/domain/entity"
	"go-medical-scheduling/internal/repository"
	"go-medical-scheduling/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientUsecase_RegisterValidation(t *testing.T) {
	valid := dto.CreatePatientRequest{Name: "Siti", Age: 40, Gender: "Female", Contact: "0812345678"}

	tests := []struct {
		name   string
		mutate func(r *dto.CreatePatientRequest)
		field  string
	}{
		{"blank name", func(r *dto.CreatePatientRequest) { r.Name = "   " }, "name"},
		{"age zero", func(r *dto.CreatePatientRequest) { r.Age = 0 }, "age"},
		{"age above range", func(r *dto.CreatePatientRequest) { r.Age = 151 }, "age"},
		{"missing gender", func(r *dto.CreatePatientRequest) { r.Gender = "" }, "gender"},
		{"short contact", func(r *dto.CreatePatientRequest) { r.Contact = "081234567" }, "contact"},
		{"non digit contact", func(r *dto.CreatePatientRequest) { r.Contact = "08123x5678" }, "contact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := valid
			tt.mutate(&req)

			_, err := f.patients.Register(context.Background(), &req)
			require.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestPatientUsecase_RegisterBoundaryAges(t *testing.T) {
	f := newFixture(t)
	for _, age := range []int{1, 150} {
		_, err := f.patients.Register(context.Background(), &dto.CreatePatientRequest{
			Name: "Edge", Age: age, Gender: "Male", Contact: "0812345678",
		})
		assert.NoError(t, err)
	}
}

func TestPatientUsecase_IDsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	stores := repository.NewMemoryStores()
	require.NoError(t, stores.Patients.Save(ctx, entity.Patient{ID: "P1001", Name: "A"}))
	require.NoError(t, stores.Patients.Save(ctx, entity.Patient{ID: "P1002", Name: "B"}))

	f := newFixtureWithStores(t, stores, service.NoSlotPolicy{})
	assert.Equal(t, "P1003", f.registerPatient(t, "C"))

	// a fresh registry over the same storage continues the sequence
	restarted := newFixtureWithStores(t, stores, service.NoSlotPolicy{})
	assert.Equal(t, "P1004", restarted.registerPatient(t, "D"))
}

func TestPatientUsecase_FirstIDIsSeed(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "P1000", f.registerPatient(t, "First"))
	assert.Equal(t, "P1001", f.registerPatient(t, "Second"))
}

func TestPatientUsecase_GetAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.registerPatient(t, "Patient")
	}

	got, err := f.patients.Get(ctx, "P1001")
	require.NoError(t, err)
	assert.Equal(t, "Patient", got.Name)
	assert.Empty(t, got.AppointmentIDs)

	_, err = f.patients.Get(ctx, "P9999")
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := f.patients.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "P1000", list.Patients[0].ID)
	assert.Equal(t, "P1002", list.Patients[2].ID)
}

func TestPatientUsecase_UpdateKeepsBackReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot := futureSlot(3, 10)
	patientID := f.registerPatient(t, "Old Name")
	doctorID := f.registerPractitioner(t, "Dr. A", slot)
	appointmentID := f.book(t, patientID, doctorID, slot)

	updated, err := f.patients.Update(ctx, patientID, &dto.UpdatePatientRequest{
		Name: " New Name ", Age: 41, Gender: "Female", Contact: "0899999999",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 41, updated.Age)
	assert.Equal(t, []string{appointmentID}, updated.AppointmentIDs)

	_, err = f.patients.Update(ctx, "P404", &dto.UpdatePatientRequest{
		Name: "X", Age: 20, Gender: "Male", Contact: "0899999999",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.patients.Update(ctx, patientID, &dto.UpdatePatientRequest{
		Name: "X", Age: 200, Gender: "Male", Contact: "0899999999",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
