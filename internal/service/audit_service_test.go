package service

import (
	"context"
	"testing"

	"go-medical-scheduling/internal/domain/entity"
	"go-medical-scheduling/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_LogUpdate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore[entity.AuditLog]()
	audit := NewAuditService(quietLogger(), store)

	err := audit.LogUpdate(ctx, entity.AuditActionAppointmentCancel, "appointment", "A5000",
		map[string]interface{}{"status": "BOOKED"},
		map[string]interface{}{"status": "CANCELLED"})
	require.NoError(t, err)

	require.NoError(t, audit.LogCreate(ctx, entity.AuditActionPatientRegister, "patient", "P1000", nil))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	var cancel entity.AuditLog
	for _, l := range all {
		if l.Action == entity.AuditActionAppointmentCancel {
			cancel = l
		}
	}
	assert.Equal(t, "A5000", cancel.EntityID)
	assert.Equal(t, "appointment", cancel.Entity)
	assert.NotEmpty(t, cancel.ID)
	assert.False(t, cancel.CreatedAt.IsZero())
	assert.Equal(t, map[string]interface{}{"status": "CANCELLED"}, cancel.Metadata["new_value"])
}
