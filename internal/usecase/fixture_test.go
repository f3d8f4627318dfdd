package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/domain/entity"
	domainRepo "go-medical-scheduling/internal/domain/repository"
	"go-medical-scheduling/internal/infrastructure/lock"
	"go-medical-scheduling/internal/repository"
	"go-medical-scheduling/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	stores        *repository.Stores
	patients      PatientUsecase
	practitioners PractitionerUsecase
	appointments  AppointmentUsecase
	records       HealthRecordUsecase
	auditLogs     AuditLogUsecase
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStores(t, repository.NewMemoryStores(), service.NoSlotPolicy{})
}

// newFixtureWithStores wires every usecase over stores, the way bootstrap
// does, with one shared local locker.
func newFixtureWithStores(t *testing.T, stores *repository.Stores, policy service.SlotPolicy) *fixture {
	t.Helper()
	return newFixtureWithLocker(t, stores, policy, lock.NewLocalLocker())
}

// newFixtureWithLocker builds a second usecase stack over the same stores and
// locker, the way two processes sharing storage see each other.
func newFixtureWithLocker(t *testing.T, stores *repository.Stores, policy service.SlotPolicy, locker lock.Locker) *fixture {
	t.Helper()
	log := quietLogger()
	audit := service.NewAuditService(log, stores.AuditLogs)
	journal := service.NewIntentJournal(log, stores.Intents)

	patients := NewPatientUsecase(log, locker, nil, stores.Patients, audit)
	practitioners := NewPractitionerUsecase(log, locker, nil, stores.Practitioners, policy, audit)
	return &fixture{
		stores:        stores,
		patients:      patients,
		practitioners: practitioners,
		appointments:  NewAppointmentUsecase(log, locker, nil, stores.Appointments, stores.Patients, stores.Practitioners, journal, audit, time.UTC),
		records:       NewHealthRecordUsecase(log, locker, nil, stores.HealthRecords, stores.Patients, stores.Practitioners, audit),
		auditLogs:     NewAuditLogUsecase(log, stores.AuditLogs),
	}
}

// setClock pins "now" for every usecase in the fixture
func (f *fixture) setClock(now time.Time) {
	clock := func() time.Time { return now }
	f.patients.(*patientUsecase).now = clock
	f.practitioners.(*practitionerUsecase).now = clock
	f.appointments.(*appointmentUsecase).now = clock
	f.records.(*healthRecordUsecase).now = clock
}

func (f *fixture) registerPatient(t *testing.T, name string) string {
	t.Helper()
	resp, err := f.patients.Register(context.Background(), &dto.CreatePatientRequest{
		Name: name, Age: 34, Gender: "Female", Contact: "0812345678",
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) registerPractitioner(t *testing.T, name string, slots ...time.Time) string {
	t.Helper()
	resp, err := f.practitioners.Register(context.Background(), &dto.CreatePractitionerRequest{
		Name: name, Specialty: "General Practice", Slots: slots,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) book(t *testing.T, patientID, practitionerID string, at time.Time) string {
	t.Helper()
	resp, err := f.appointments.Book(context.Background(), &dto.BookAppointmentRequest{
		PatientID: patientID, PractitionerID: practitionerID, ScheduledAt: at,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *fixture) practitioner(t *testing.T, id string) entity.Practitioner {
	t.Helper()
	p, found, err := f.stores.Practitioners.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, found)
	return p
}

func (f *fixture) patient(t *testing.T, id string) entity.Patient {
	t.Helper()
	p, found, err := f.stores.Patients.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, found)
	return p
}

// futureSlot returns a whole-hour time days ahead of the real clock
func futureSlot(days, hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

// failingStore wraps a store and fails Save for the listed IDs
type failingStore[T domainRepo.Entity[T]] struct {
	*repository.MemoryStore[T]
	failSave map[string]bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore[T]) Save(ctx context.Context, e T) error {
	if s.failSave[e.Key()] {
		return errDiskFull
	}
	return s.MemoryStore.Save(ctx, e)
}
