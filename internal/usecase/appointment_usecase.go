package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"go-medical-scheduling/internal/converter"
	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/domain/entity"
	"go-medical-scheduling/internal/domain/repository"
	"go-medical-scheduling/internal/infrastructure/lock"
	"go-medical-scheduling/internal/observability/metrics"
	"go-medical-scheduling/internal/service"

	"github.com/sirupsen/logrus"
)

// AppointmentUsecase is the allocator and the appointment ledger. Every
// method, queries included, runs inside the allocator section, so a caller
// never observes a slot that is both available and claimed.
type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id string) (*dto.CancelAppointmentResponse, error)
	Reschedule(ctx context.Context, id string, newTime time.Time) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, id string) (*dto.AppointmentResponse, error)

	Get(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID string) (*dto.AppointmentListResponse, error)
	ListByPractitioner(ctx context.Context, practitionerID string) (*dto.AppointmentListResponse, error)
	ListByDate(ctx context.Context, day time.Time) (*dto.AppointmentListResponse, error)
	ListAll(ctx context.Context) (*dto.AppointmentListResponse, error)

	OpenSlot(ctx context.Context, practitionerID string, at time.Time) (*dto.PractitionerResponse, error)
	CloseSlot(ctx context.Context, practitionerID string, at time.Time) (bool, error)

	Reconcile(ctx context.Context) (*dto.ReconcileResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	section         section
	appointmentRepo repository.AppointmentRepository
	patients        patientAccess
	practitioners   practitionerAccess
	journal         service.IntentJournal
	audit           service.AuditService
	metrics         *metrics.AllocatorMetrics
	location        *time.Location
	now             func() time.Time
}

// NewAppointmentUsecase wires the allocator. locker must be the same Locker
// the registries were built with, and the repositories the ones they own.
func NewAppointmentUsecase(
	log *logrus.Logger,
	locker lock.Locker,
	m *metrics.AllocatorMetrics,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
	journal service.IntentJournal,
	audit service.AuditService,
	location *time.Location,
) AppointmentUsecase {
	if location == nil {
		location = time.UTC
	}
	return &appointmentUsecase{
		log:             log,
		section:         newSection(locker, m),
		appointmentRepo: appointmentRepo,
		patients:        patientAccess{log: log, repo: patientRepo},
		practitioners:   practitionerAccess{log: log, repo: practitionerRepo},
		journal:         journal,
		audit:           audit,
		metrics:         m,
		location:        location,
		now:             time.Now,
	}
}

// Book claims a slot for a patient.
//
// Flow:
// 1. Validate input against the clock read inside the section
// 2. Resolve patient and practitioner
// 3. Check the slot is open
// 4. Allocate the appointment ID
// 5. Remove the slot and persist the practitioner
// 6. Persist the appointment, then the patient back-reference
//
// A book intent is journaled before step 5 and cleared after step 6.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	var booked entity.Appointment

	err := u.section.run(ctx, func(ctx context.Context) error {
		// Step 1: Validate
		patientID := strings.TrimSpace(req.PatientID)
		practitionerID := strings.TrimSpace(req.PractitionerID)
		if patientID == "" {
			return newValidationError("patient_id", "patient id is required")
		}
		if practitionerID == "" {
			return newValidationError("practitioner_id", "practitioner id is required")
		}
		if req.ScheduledAt.IsZero() {
			return newValidationError("scheduled_at", "appointment time is required")
		}
		now := u.now()
		at := entity.NormalizeSlot(req.ScheduledAt)
		if !at.After(now) {
			return ErrTimeInPast
		}

		// Step 2: Resolve participants
		patient, err := u.patients.patientEntity(ctx, patientID)
		if err != nil {
			return err
		}
		practitioner, err := u.practitioners.practitionerEntity(ctx, practitionerID)
		if err != nil {
			return err
		}

		// Step 3: Slot must be open
		if !practitioner.HasSlot(at) {
			return slotUnavailable(practitioner.ID, at)
		}

		// Step 4: Allocate ID
		id, err := u.nextID(ctx)
		if err != nil {
			return err
		}
		appointment := entity.Appointment{
			ID:             id,
			PatientID:      patient.ID,
			PractitionerID: practitioner.ID,
			ScheduledAt:    at,
			Status:         entity.AppointmentStatusBooked,
			Reason:         strings.TrimSpace(req.Reason),
			CreatedAt:      now.UTC(),
			UpdatedAt:      now.UTC(),
		}

		intentID, err := u.journal.Begin(ctx, entity.Intent{
			Kind:           entity.IntentKindBook,
			AppointmentID:  appointment.ID,
			PatientID:      patient.ID,
			PractitionerID: practitioner.ID,
			NewTime:        at,
		})
		if err != nil {
			return storageError("journal booking", err)
		}

		// Step 5: Claim the slot
		practitioner.RemoveSlot(at)
		practitioner.UpdatedAt = now.UTC()
		if err := u.practitioners.savePractitioner(ctx, practitioner); err != nil {
			return err
		}

		// Step 6: Persist the appointment and the back-reference
		if err := u.saveAppointment(ctx, appointment); err != nil {
			u.log.Errorf("Booking %s interrupted after slot removal; pending intent %s will restore it", appointment.ID, intentID)
			return err
		}
		patient.AddAppointment(appointment.ID)
		patient.UpdatedAt = now.UTC()
		if err := u.patients.savePatient(ctx, patient); err != nil {
			u.log.Errorf("Booking %s persisted without patient back-reference; pending intent %s will add it", appointment.ID, intentID)
			return err
		}

		_ = u.journal.Complete(ctx, intentID)
		_ = u.audit.LogCreate(ctx, entity.AuditActionAppointmentBook, "appointment", appointment.ID, appointmentSnapshot(appointment))
		booked = appointment
		return nil
	})
	u.section.observe("book", err, false)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, practitioner=%s, time=%s", booked.ID, booked.PractitionerID, booked.ScheduledAt.Format(time.RFC3339))
	return converter.AppointmentToResponse(&booked), nil
}

// Cancel releases the appointment's slot. Cancelling a cancelled
// appointment is a no-op reported with Changed=false.
func (u *appointmentUsecase) Cancel(ctx context.Context, id string) (*dto.CancelAppointmentResponse, error) {
	var (
		appointment entity.Appointment
		changed     bool
	)

	err := u.section.run(ctx, func(ctx context.Context) error {
		// Step 1: Find appointment and check its state
		var err error
		appointment, err = u.appointmentEntity(ctx, id)
		if err != nil {
			return err
		}
		if appointment.IsCancelled() {
			return nil
		}
		if appointment.IsCompleted() {
			return ErrAppointmentCompleted
		}

		practitioner, err := u.practitioners.practitionerEntity(ctx, appointment.PractitionerID)
		if err != nil {
			return err
		}

		intentID, err := u.journal.Begin(ctx, entity.Intent{
			Kind:           entity.IntentKindCancel,
			AppointmentID:  appointment.ID,
			PatientID:      appointment.PatientID,
			PractitionerID: appointment.PractitionerID,
			OldTime:        appointment.ScheduledAt,
		})
		if err != nil {
			return storageError("journal cancellation", err)
		}

		// Step 2: Persist the status change
		before := appointmentSnapshot(appointment)
		now := u.now().UTC()
		appointment.Cancel()
		appointment.UpdatedAt = now
		if err := u.saveAppointment(ctx, appointment); err != nil {
			return err
		}

		// Step 3: Return the slot
		practitioner.AddSlot(appointment.ScheduledAt)
		practitioner.UpdatedAt = now
		if err := u.practitioners.savePractitioner(ctx, practitioner); err != nil {
			u.log.Errorf("Cancellation of %s persisted without returning its slot; pending intent %s will restore it", appointment.ID, intentID)
			return err
		}

		_ = u.journal.Complete(ctx, intentID)
		_ = u.audit.LogUpdate(ctx, entity.AuditActionAppointmentCancel, "appointment", appointment.ID, before, appointmentSnapshot(appointment))
		changed = true
		return nil
	})
	u.section.observe("cancel", err, !changed)
	if err != nil {
		return nil, err
	}

	if changed {
		u.log.Infof("Appointment cancelled: id=%s, slot %s returned to %s", appointment.ID, appointment.ScheduledAt.Format(time.RFC3339), appointment.PractitionerID)
	}
	return &dto.CancelAppointmentResponse{
		Appointment: *converter.AppointmentToResponse(&appointment),
		Changed:     changed,
	}, nil
}

// Reschedule moves a booked appointment to another open slot of the same
// practitioner. The old slot is returned and the new one claimed in a
// single practitioner write.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id string, newTime time.Time) (*dto.AppointmentResponse, error) {
	var appointment entity.Appointment

	err := u.section.run(ctx, func(ctx context.Context) error {
		if newTime.IsZero() {
			return newValidationError("scheduled_at", "new time is required")
		}
		at := entity.NormalizeSlot(newTime)

		var err error
		appointment, err = u.appointmentEntity(ctx, id)
		if err != nil {
			return err
		}
		if appointment.IsCancelled() {
			return ErrAppointmentCancelled
		}
		if appointment.IsCompleted() {
			return ErrAppointmentCompleted
		}
		now := u.now()
		if !at.After(now) {
			return ErrTimeInPast
		}

		practitioner, err := u.practitioners.practitionerEntity(ctx, appointment.PractitionerID)
		if err != nil {
			return err
		}
		if !practitioner.HasSlot(at) {
			return slotUnavailable(practitioner.ID, at)
		}

		oldTime := appointment.ScheduledAt
		intentID, err := u.journal.Begin(ctx, entity.Intent{
			Kind:           entity.IntentKindReschedule,
			AppointmentID:  appointment.ID,
			PatientID:      appointment.PatientID,
			PractitionerID: appointment.PractitionerID,
			OldTime:        oldTime,
			NewTime:        at,
		})
		if err != nil {
			return storageError("journal reschedule", err)
		}

		before := appointmentSnapshot(appointment)
		appointment.ScheduledAt = at
		appointment.UpdatedAt = now.UTC()
		if err := u.saveAppointment(ctx, appointment); err != nil {
			return err
		}

		practitioner.AddSlot(oldTime)
		practitioner.RemoveSlot(at)
		practitioner.UpdatedAt = now.UTC()
		if err := u.practitioners.savePractitioner(ctx, practitioner); err != nil {
			u.log.Errorf("Reschedule of %s persisted without swapping slots; pending intent %s will swap them", appointment.ID, intentID)
			return err
		}

		_ = u.journal.Complete(ctx, intentID)
		_ = u.audit.LogUpdate(ctx, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID, before, appointmentSnapshot(appointment))
		return nil
	})
	u.section.observe("reschedule", err, false)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment rescheduled: id=%s, time=%s", appointment.ID, appointment.ScheduledAt.Format(time.RFC3339))
	return converter.AppointmentToResponse(&appointment), nil
}

// Complete marks a booked appointment as attended. Completing twice is a
// no-op; completing a cancelled appointment is rejected.
func (u *appointmentUsecase) Complete(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	var (
		appointment entity.Appointment
		changed     bool
	)

	err := u.section.run(ctx, func(ctx context.Context) error {
		var err error
		appointment, err = u.appointmentEntity(ctx, id)
		if err != nil {
			return err
		}
		if appointment.IsCompleted() {
			return nil
		}
		if appointment.IsCancelled() {
			return ErrAppointmentCancelled
		}

		before := appointmentSnapshot(appointment)
		appointment.Complete()
		appointment.UpdatedAt = u.now().UTC()
		if err := u.saveAppointment(ctx, appointment); err != nil {
			return err
		}

		_ = u.audit.LogUpdate(ctx, entity.AuditActionAppointmentComplete, "appointment", appointment.ID, before, appointmentSnapshot(appointment))
		changed = true
		return nil
	})
	u.section.observe("complete", err, !changed)
	if err != nil {
		return nil, err
	}

	if changed {
		u.log.Infof("Appointment completed: id=%s", appointment.ID)
	}
	return converter.AppointmentToResponse(&appointment), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	var appointment entity.Appointment

	err := u.section.run(ctx, func(ctx context.Context) error {
		var err error
		appointment, err = u.appointmentEntity(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(&appointment), nil
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID string) (*dto.AppointmentListResponse, error) {
	return u.list(ctx, func(ctx context.Context) error {
		_, err := u.patients.patientEntity(ctx, patientID)
		return err
	}, func(a entity.Appointment) bool {
		return a.PatientID == patientID
	})
}

func (u *appointmentUsecase) ListByPractitioner(ctx context.Context, practitionerID string) (*dto.AppointmentListResponse, error) {
	return u.list(ctx, func(ctx context.Context) error {
		_, err := u.practitioners.practitionerEntity(ctx, practitionerID)
		return err
	}, func(a entity.Appointment) bool {
		return a.PractitionerID == practitionerID
	})
}

// ListByDate returns appointments whose time falls on day's calendar date
// in the configured location.
func (u *appointmentUsecase) ListByDate(ctx context.Context, day time.Time) (*dto.AppointmentListResponse, error) {
	y, m, d := day.In(u.location).Date()
	return u.list(ctx, nil, func(a entity.Appointment) bool {
		ay, am, ad := a.ScheduledAt.In(u.location).Date()
		return ay == y && am == m && ad == d
	})
}

func (u *appointmentUsecase) ListAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return u.list(ctx, nil, func(entity.Appointment) bool { return true })
}

// OpenSlot publishes availability. A time claimed by a booked appointment
// of the same practitioner cannot be opened.
func (u *appointmentUsecase) OpenSlot(ctx context.Context, practitionerID string, at time.Time) (*dto.PractitionerResponse, error) {
	var practitioner entity.Practitioner

	err := u.section.run(ctx, func(ctx context.Context) error {
		if at.IsZero() {
			return newValidationError("time", "slot time is required")
		}
		at = entity.NormalizeSlot(at)
		if !at.After(u.now()) {
			return newValidationError("time", "slot must be in the future")
		}

		var err error
		practitioner, err = u.practitioners.practitionerEntity(ctx, practitionerID)
		if err != nil {
			return err
		}
		if practitioner.HasSlot(at) {
			return nil
		}

		claimed, err := u.isClaimed(ctx, practitioner.ID, at)
		if err != nil {
			return err
		}
		if claimed {
			return slotUnavailable(practitioner.ID, at)
		}

		practitioner.AddSlot(at)
		practitioner.UpdatedAt = u.now().UTC()
		if err := u.practitioners.savePractitioner(ctx, practitioner); err != nil {
			return err
		}

		_ = u.audit.LogCreate(ctx, entity.AuditActionSlotOpen, "practitioner", practitioner.ID, map[string]interface{}{"time": at})
		return nil
	})
	u.section.observe("open_slot", err, false)
	if err != nil {
		return nil, err
	}

	return converter.PractitionerToResponse(&practitioner), nil
}

// CloseSlot withdraws availability and reports whether the slot was open
func (u *appointmentUsecase) CloseSlot(ctx context.Context, practitionerID string, at time.Time) (bool, error) {
	var removed bool

	err := u.section.run(ctx, func(ctx context.Context) error {
		practitioner, err := u.practitioners.practitionerEntity(ctx, practitionerID)
		if err != nil {
			return err
		}
		if !practitioner.RemoveSlot(at) {
			return nil
		}

		practitioner.UpdatedAt = u.now().UTC()
		if err := u.practitioners.savePractitioner(ctx, practitioner); err != nil {
			return err
		}

		_ = u.audit.LogUpdate(ctx, entity.AuditActionSlotClose, "practitioner", practitioner.ID,
			map[string]interface{}{"time": entity.NormalizeSlot(at)}, nil)
		removed = true
		return nil
	})
	u.section.observe("close_slot", err, !removed)
	return removed, err
}

// list loads the ledger inside the section, optionally after a precheck, and
// returns the matching appointments ordered by time then ID.
func (u *appointmentUsecase) list(ctx context.Context, precheck func(ctx context.Context) error, match func(entity.Appointment) bool) (*dto.AppointmentListResponse, error) {
	var appointments []entity.Appointment

	err := u.section.run(ctx, func(ctx context.Context) error {
		if precheck != nil {
			if err := precheck(ctx); err != nil {
				return err
			}
		}

		all, err := u.appointmentRepo.LoadAll(ctx)
		if err != nil {
			u.log.Warnf("Failed to load appointments: %+v", err)
			return storageError("load appointments", err)
		}
		appointments = make([]entity.Appointment, 0, len(all))
		for _, a := range all {
			if match(a) {
				appointments = append(appointments, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortAppointments(appointments)
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// nextID skips IDs named by pending intents as well, so an interrupted
// booking's ID is never handed to a different appointment.
func (u *appointmentUsecase) nextID(ctx context.Context) (string, error) {
	pending, err := u.journal.Pending(ctx)
	if err != nil {
		u.log.Warnf("Failed to load intents: %+v", err)
		return "", storageError("load intents", err)
	}
	reserved := make([]string, 0, len(pending))
	for _, intent := range pending {
		reserved = append(reserved, intent.AppointmentID)
	}

	id, err := service.NextID[entity.Appointment](ctx, u.appointmentRepo, service.AppointmentIDPrefix, service.AppointmentIDSeed, reserved...)
	if err != nil {
		u.log.Warnf("Failed to scan appointment ids: %+v", err)
		return "", storageError("scan appointments", err)
	}
	return id, nil
}

func (u *appointmentUsecase) isClaimed(ctx context.Context, practitionerID string, at time.Time) (bool, error) {
	all, err := u.appointmentRepo.LoadAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return false, storageError("load appointments", err)
	}
	for _, a := range all {
		if a.IsBooked() && a.PractitionerID == practitionerID && a.ScheduledAt.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (u *appointmentUsecase) appointmentEntity(ctx context.Context, id string) (entity.Appointment, error) {
	appointment, found, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return entity.Appointment{}, storageError("find appointment", err)
	}
	if !found {
		return entity.Appointment{}, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) saveAppointment(ctx context.Context, appointment entity.Appointment) error {
	if err := u.appointmentRepo.Save(ctx, appointment); err != nil {
		u.log.Warnf("Failed to save appointment %s: %+v", appointment.ID, err)
		return storageError("save appointment", err)
	}
	return nil
}

func sortAppointments(appointments []entity.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].Before(appointments[j])
	})
}

func appointmentSnapshot(a entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"patient_id":      a.PatientID,
		"practitioner_id": a.PractitionerID,
		"scheduled_at":    a.ScheduledAt,
		"status":          string(a.Status),
	}
}
