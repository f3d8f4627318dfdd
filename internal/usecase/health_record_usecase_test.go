package usecase

import (
	"context"
	"testing"
	"time"

	"go-medical-scheduling/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRecordUsecase_Add(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	patientID := f.registerPatient(t, "Budi")
	doctorID := f.registerPractitioner(t, "Dr. A")

	first, err := f.records.Add(ctx, &dto.CreateHealthRecordRequest{
		PatientID: patientID, PractitionerID: doctorID, Symptoms: "fever", Diagnosis: "flu", Prescription: "rest",
	})
	require.NoError(t, err)
	assert.Equal(t, "R3000", first.ID)
	assert.False(t, first.RecordedAt.IsZero())

	earlier := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	second, err := f.records.Add(ctx, &dto.CreateHealthRecordRequest{
		PatientID: patientID, PractitionerID: doctorID, RecordedAt: &earlier, Symptoms: "cough", Diagnosis: "cold",
	})
	require.NoError(t, err)
	assert.Equal(t, "R3001", second.ID)

	assert.Equal(t, []string{"R3000", "R3001"}, f.patient(t, patientID).HealthRecordIDs)

	list, err := f.records.ListByPatient(ctx, patientID)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "R3001", list.Records[0].ID)

	byDoctor, err := f.records.ListByPractitioner(ctx, doctorID)
	require.NoError(t, err)
	assert.Equal(t, 2, byDoctor.Total)

	got, err := f.records.Get(ctx, "R3000")
	require.NoError(t, err)
	assert.Equal(t, "flu", got.Diagnosis)

	_, err = f.records.Get(ctx, "R9")
	assert.ErrorIs(t, err, ErrHealthRecordNotFound)
}

func TestHealthRecordUsecase_AddRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	patientID := f.registerPatient(t, "Budi")
	doctorID := f.registerPractitioner(t, "Dr. A")

	tests := []struct {
		name    string
		req     dto.CreateHealthRecordRequest
		wantErr error
	}{
		{"missing symptoms", dto.CreateHealthRecordRequest{PatientID: patientID, PractitionerID: doctorID, Diagnosis: "flu"}, ErrValidation},
		{"missing diagnosis", dto.CreateHealthRecordRequest{PatientID: patientID, PractitionerID: doctorID, Symptoms: "fever"}, ErrValidation},
		{"missing patient id", dto.CreateHealthRecordRequest{PractitionerID: doctorID, Symptoms: "a", Diagnosis: "b"}, ErrValidation},
		{"unknown patient", dto.CreateHealthRecordRequest{PatientID: "P404", PractitionerID: doctorID, Symptoms: "a", Diagnosis: "b"}, ErrPatientNotFound},
		{"unknown practitioner", dto.CreateHealthRecordRequest{PatientID: patientID, PractitionerID: "D404", Symptoms: "a", Diagnosis: "b"}, ErrPractitionerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.records.Add(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := f.records.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}
