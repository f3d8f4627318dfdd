package repository

import (
	"fmt"

	"go-medical-scheduling/config"
	"go-medical-scheduling/internal/domain/entity"
	domainRepo "go-medical-scheduling/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Collection names shared by the file and redis drivers
const (
	CollectionPatients      = "patients"
	CollectionPractitioners = "practitioners"
	CollectionAppointments  = "appointments"
	CollectionHealthRecords = "health_records"
	CollectionAuditLogs     = "audit_logs"
	CollectionIntents       = "intents"
)

// Stores groups one store per entity type
type Stores struct {
	Patients      domainRepo.PatientRepository
	Practitioners domainRepo.PractitionerRepository
	Appointments  domainRepo.AppointmentRepository
	HealthRecords domainRepo.HealthRecordRepository
	AuditLogs     domainRepo.AuditLogRepository
	Intents       domainRepo.IntentRepository
}

// NewMemoryStores returns process-local stores, mainly for tests and demos
func NewMemoryStores() *Stores {
	return &Stores{
		Patients:      NewMemoryStore[entity.Patient](),
		Practitioners: NewMemoryStore[entity.Practitioner](),
		Appointments:  NewMemoryStore[entity.Appointment](),
		HealthRecords: NewMemoryStore[entity.HealthRecord](),
		AuditLogs:     NewMemoryStore[entity.AuditLog](),
		Intents:       NewMemoryStore[entity.Intent](),
	}
}

// NewStores builds the stores for the configured driver. db is required for
// the postgres driver and rdb for the redis driver; both may be nil otherwise.
func NewStores(cfg config.StorageConfig, db *gorm.DB, rdb *redis.Client) (*Stores, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return NewMemoryStores(), nil

	case config.StorageFile:
		return newFileStores(cfg.Dir)

	case config.StorageRedis:
		if rdb == nil {
			return nil, fmt.Errorf("storage driver %q requires a redis client", cfg.Driver)
		}
		return &Stores{
			Patients:      NewRedisStore[entity.Patient](rdb, CollectionPatients),
			Practitioners: NewRedisStore[entity.Practitioner](rdb, CollectionPractitioners),
			Appointments:  NewRedisStore[entity.Appointment](rdb, CollectionAppointments),
			HealthRecords: NewRedisStore[entity.HealthRecord](rdb, CollectionHealthRecords),
			AuditLogs:     NewRedisStore[entity.AuditLog](rdb, CollectionAuditLogs),
			Intents:       NewRedisStore[entity.Intent](rdb, CollectionIntents),
		}, nil

	case config.StoragePostgres:
		if db == nil {
			return nil, fmt.Errorf("storage driver %q requires a database connection", cfg.Driver)
		}
		return &Stores{
			Patients:      NewGormStore[entity.Patient](db),
			Practitioners: NewGormStore[entity.Practitioner](db),
			Appointments:  NewGormStore[entity.Appointment](db),
			HealthRecords: NewGormStore[entity.HealthRecord](db),
			AuditLogs:     NewGormStore[entity.AuditLog](db),
			Intents:       NewGormStore[entity.Intent](db),
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func newFileStores(dir string) (*Stores, error) {
	patients, err := NewFileStore[entity.Patient](dir, CollectionPatients)
	if err != nil {
		return nil, err
	}
	practitioners, err := NewFileStore[entity.Practitioner](dir, CollectionPractitioners)
	if err != nil {
		return nil, err
	}
	appointments, err := NewFileStore[entity.Appointment](dir, CollectionAppointments)
	if err != nil {
		return nil, err
	}
	records, err := NewFileStore[entity.HealthRecord](dir, CollectionHealthRecords)
	if err != nil {
		return nil, err
	}
	auditLogs, err := NewFileStore[entity.AuditLog](dir, CollectionAuditLogs)
	if err != nil {
		return nil, err
	}
	intents, err := NewFileStore[entity.Intent](dir, CollectionIntents)
	if err != nil {
		return nil, err
	}

	return &Stores{
		Patients:      patients,
		Practitioners: practitioners,
		Appointments:  appointments,
		HealthRecords: records,
		AuditLogs:     auditLogs,
		Intents:       intents,
	}, nil
}
