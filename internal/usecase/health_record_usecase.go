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

type HealthRecordUsecase interface {
	Add(ctx context.Context, req *dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error)
	Get(ctx context.Context, id string) (*dto.HealthRecordResponse, error)
	ListByPatient(ctx context.Context, patientID string) (*dto.HealthRecordListResponse, error)
	ListByPractitioner(ctx context.Context, practitionerID string) (*dto.HealthRecordListResponse, error)
	ListAll(ctx context.Context) (*dto.HealthRecordListResponse, error)
}

type healthRecordUsecase struct {
	log           *logrus.Logger
	section       section
	recordRepo    repository.HealthRecordRepository
	patients      patientAccess
	practitioners practitionerAccess
	audit         service.AuditService
	now           func() time.Time
}

func NewHealthRecordUsecase(
	log *logrus.Logger,
	locker lock.Locker,
	m *metrics.AllocatorMetrics,
	recordRepo repository.HealthRecordRepository,
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
	audit service.AuditService,
) HealthRecordUsecase {
	return &healthRecordUsecase{
		log:           log,
		section:       newSection(locker, m),
		recordRepo:    recordRepo,
		patients:      patientAccess{log: log, repo: patientRepo},
		practitioners: practitionerAccess{log: log, repo: practitionerRepo},
		audit:         audit,
		now:           time.Now,
	}
}

// Add stores a visit note and links it from the patient
func (u *healthRecordUsecase) Add(ctx context.Context, req *dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	var created entity.HealthRecord

	err := u.section.run(ctx, func(ctx context.Context) error {
		// Step 1: Validate
		patientID := strings.TrimSpace(req.PatientID)
		practitionerID := strings.TrimSpace(req.PractitionerID)
		symptoms := strings.TrimSpace(req.Symptoms)
		diagnosis := strings.TrimSpace(req.Diagnosis)
		switch {
		case patientID == "":
			return newValidationError("patient_id", "patient id is required")
		case practitionerID == "":
			return newValidationError("practitioner_id", "practitioner id is required")
		case symptoms == "":
			return newValidationError("symptoms", "symptoms are required")
		case diagnosis == "":
			return newValidationError("diagnosis", "diagnosis is required")
		}

		// Step 2: Resolve participants
		patient, err := u.patients.patientEntity(ctx, patientID)
		if err != nil {
			return err
		}
		if _, err := u.practitioners.practitionerEntity(ctx, practitionerID); err != nil {
			return err
		}

		// Step 3: Persist record, then the patient back-reference
		id, err := service.NextID[entity.HealthRecord](ctx, u.recordRepo, service.HealthRecordIDPrefix, service.HealthRecordIDSeed)
		if err != nil {
			u.log.Warnf("Failed to scan health record ids: %+v", err)
			return storageError("scan health records", err)
		}

		now := u.now().UTC()
		recordedAt := now
		if req.RecordedAt != nil && !req.RecordedAt.IsZero() {
			recordedAt = req.RecordedAt.UTC()
		}
		record := entity.HealthRecord{
			ID:             id,
			PatientID:      patient.ID,
			PractitionerID: practitionerID,
			RecordedAt:     recordedAt,
			Symptoms:       symptoms,
			Diagnosis:      diagnosis,
			Prescription:   strings.TrimSpace(req.Prescription),
			CreatedAt:      now,
		}
		if err := u.recordRepo.Save(ctx, record); err != nil {
			u.log.Warnf("Failed to save health record %s: %+v", record.ID, err)
			return storageError("save health record", err)
		}

		patient.AddHealthRecord(record.ID)
		patient.UpdatedAt = now
		if err := u.patients.savePatient(ctx, patient); err != nil {
			return err
		}

		_ = u.audit.LogCreate(ctx, entity.AuditActionHealthRecordAdd, "health_record", record.ID, map[string]interface{}{
			"patient_id":      record.PatientID,
			"practitioner_id": record.PractitionerID,
		})
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Health record added: id=%s, patient=%s", created.ID, created.PatientID)
	return converter.HealthRecordToResponse(&created), nil
}

func (u *healthRecordUsecase) Get(ctx context.Context, id string) (*dto.HealthRecordResponse, error) {
	var record entity.HealthRecord

	err := u.section.run(ctx, func(ctx context.Context) error {
		var (
			found bool
			err   error
		)
		record, found, err = u.recordRepo.FindByID(ctx, id)
		if err != nil {
			u.log.Warnf("Failed to find health record %s: %+v", id, err)
			return storageError("find health record", err)
		}
		if !found {
			return ErrHealthRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.HealthRecordToResponse(&record), nil
}

func (u *healthRecordUsecase) ListByPatient(ctx context.Context, patientID string) (*dto.HealthRecordListResponse, error) {
	return u.list(ctx, func(r entity.HealthRecord) bool { return r.PatientID == patientID })
}

func (u *healthRecordUsecase) ListByPractitioner(ctx context.Context, practitionerID string) (*dto.HealthRecordListResponse, error) {
	return u.list(ctx, func(r entity.HealthRecord) bool { return r.PractitionerID == practitionerID })
}

func (u *healthRecordUsecase) ListAll(ctx context.Context) (*dto.HealthRecordListResponse, error) {
	return u.list(ctx, func(entity.HealthRecord) bool { return true })
}

func (u *healthRecordUsecase) list(ctx context.Context, match func(entity.HealthRecord) bool) (*dto.HealthRecordListResponse, error) {
	var records []entity.HealthRecord

	err := u.section.run(ctx, func(ctx context.Context) error {
		all, err := u.recordRepo.LoadAll(ctx)
		if err != nil {
			u.log.Warnf("Failed to load health records: %+v", err)
			return storageError("load health records", err)
		}
		for _, r := range all {
			if match(r) {
				records = append(records, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].RecordedAt.Equal(records[j].RecordedAt) {
			return records[i].RecordedAt.Before(records[j].RecordedAt)
		}
		return entity.LessID(records[i].ID, records[j].ID)
	})
	return &dto.HealthRecordListResponse{
		Records: converter.HealthRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
