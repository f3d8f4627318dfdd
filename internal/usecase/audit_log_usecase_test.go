package usecase

import (
	"context"
	"testing"

	"go-medical-scheduling/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogUsecase_ListTracksLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot, next := futureSlot(2, 10), futureSlot(2, 11)
	patientID := f.registerPatient(t, "Budi")
	doctorID := f.registerPractitioner(t, "Dr. A", slot, next)
	appointmentID := f.book(t, patientID, doctorID, slot)

	_, err := f.appointments.Reschedule(ctx, appointmentID, next)
	require.NoError(t, err)
	_, err = f.appointments.Cancel(ctx, appointmentID)
	require.NoError(t, err)

	logs, err := f.auditLogs.List(ctx, appointmentID)
	require.NoError(t, err)
	require.Equal(t, 3, logs.Total)

	actions := make([]string, 0, logs.Total)
	for _, l := range logs.Logs {
		actions = append(actions, l.Action)
	}
	assert.ElementsMatch(t, []string{
		entity.AuditActionAppointmentBook,
		entity.AuditActionAppointmentReschedule,
		entity.AuditActionAppointmentCancel,
	}, actions)

	all, err := f.auditLogs.List(ctx, "")
	require.NoError(t, err)
	// patient register + practitioner register + the three above
	assert.Equal(t, 5, all.Total)
}
