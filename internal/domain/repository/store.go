package repository

import (
	"context"

	"go-medical-scheduling/internal/domain/entity"
)

// Entity is implemented by every persisted type. Key returns the stable
// identifier; Clone returns a copy that shares no mutable storage.
type Entity[T any] interface {
	Key() string
	Clone() T
}

// Store persists one entity type. It is durable but offers no atomicity
// across entity types. Save may be implemented as load-all, mutate,
// save-all; callers must not assume it is cheaper than a full round trip.
type Store[T Entity[T]] interface {
	// SaveAll replaces the whole persisted collection.
	SaveAll(ctx context.Context, entities map[string]T) error

	// LoadAll returns every entity keyed by ID. An empty store yields an
	// empty map, never an error.
	LoadAll(ctx context.Context) (map[string]T, error)

	// FindByID reports found=false when id is not persisted.
	FindByID(ctx context.Context, id string) (T, bool, error)

	// Save upserts a single entity.
	Save(ctx context.Context, e T) error

	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

type (
	PatientRepository      = Store[entity.Patient]
	PractitionerRepository = Store[entity.Practitioner]
	AppointmentRepository  = Store[entity.Appointment]
	HealthRecordRepository = Store[entity.HealthRecord]
	AuditLogRepository     = Store[entity.AuditLog]
	IntentRepository       = Store[entity.Intent]
)
