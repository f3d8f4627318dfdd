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

// PatientUsecase is the patient registry. Every method runs inside the
// allocator section.
type PatientUsecase interface {
	Register(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, id string) (*dto.PatientResponse, error)
	List(ctx context.Context) (*dto.PatientListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	patientAccess
	log         *logrus.Logger
	section     section
	patientRepo repository.PatientRepository
	audit       service.AuditService
	now         func() time.Time
}

func NewPatientUsecase(
	log *logrus.Logger,
	locker lock.Locker,
	m *metrics.AllocatorMetrics,
	patientRepo repository.PatientRepository,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		patientAccess: patientAccess{log: log, repo: patientRepo},
		log:           log,
		section:       newSection(locker, m),
		patientRepo:   patientRepo,
		audit:         audit,
		now:           time.Now,
	}
}

func (u *patientUsecase) Register(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	var created entity.Patient

	err := u.section.run(ctx, func(ctx context.Context) error {
		profile := patientProfile{Name: req.Name, Age: req.Age, Gender: req.Gender, Contact: req.Contact}
		if err := profile.validate(); err != nil {
			return err
		}

		id, err := service.NextID[entity.Patient](ctx, u.patientRepo, service.PatientIDPrefix, service.PatientIDSeed)
		if err != nil {
			u.log.Warnf("Failed to scan patient ids: %+v", err)
			return storageError("scan patients", err)
		}

		now := u.now().UTC()
		patient := entity.Patient{
			ID:              id,
			AppointmentIDs:  []string{},
			HealthRecordIDs: []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		profile.applyTo(&patient)

		if err := u.patientRepo.Save(ctx, patient); err != nil {
			u.log.Warnf("Failed to save patient %s: %+v", patient.ID, err)
			return storageError("save patient", err)
		}

		_ = u.audit.LogCreate(ctx, entity.AuditActionPatientRegister, "patient", patient.ID, converter.PatientToResponse(&patient))
		created = patient
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient registered: id=%s", created.ID)
	return converter.PatientToResponse(&created), nil
}

func (u *patientUsecase) Get(ctx context.Context, id string) (*dto.PatientResponse, error) {
	var patient entity.Patient

	err := u.section.run(ctx, func(ctx context.Context) error {
		var err error
		patient, err = u.patientEntity(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(&patient), nil
}

func (u *patientUsecase) List(ctx context.Context) (*dto.PatientListResponse, error) {
	var patients []entity.Patient

	err := u.section.run(ctx, func(ctx context.Context) error {
		all, err := u.patientRepo.LoadAll(ctx)
		if err != nil {
			u.log.Warnf("Failed to load patients: %+v", err)
			return storageError("load patients", err)
		}
		patients = make([]entity.Patient, 0, len(all))
		for _, p := range all {
			patients = append(patients, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(patients, func(i, j int) bool { return entity.LessID(patients[i].ID, patients[j].ID) })
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// Update rewrites the profile fields. Back-references are left untouched.
func (u *patientUsecase) Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	var updated entity.Patient

	err := u.section.run(ctx, func(ctx context.Context) error {
		profile := patientProfile{Name: req.Name, Age: req.Age, Gender: req.Gender, Contact: req.Contact}
		if err := profile.validate(); err != nil {
			return err
		}

		patient, err := u.patientEntity(ctx, id)
		if err != nil {
			return err
		}
		old := converter.PatientToResponse(&patient)

		profile.applyTo(&patient)
		patient.UpdatedAt = u.now().UTC()
		if err := u.savePatient(ctx, patient); err != nil {
			return err
		}

		_ = u.audit.LogUpdate(ctx, entity.AuditActionPatientUpdate, "patient", patient.ID, old, converter.PatientToResponse(&patient))
		updated = patient
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient updated: id=%s", updated.ID)
	return converter.PatientToResponse(&updated), nil
}

type patientProfile struct {
	Name    string
	Age     int
	Gender  string
	Contact string
}

func (p patientProfile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return newValidationError("name", "patient name is required")
	}
	if p.Age < 1 || p.Age > 150 {
		return newValidationError("age", "age must be between 1 and 150")
	}
	if strings.TrimSpace(p.Gender) == "" {
		return newValidationError("gender", "gender is required")
	}
	if !isTenDigits(strings.TrimSpace(p.Contact)) {
		return newValidationError("contact", "contact must be a 10-digit phone number")
	}
	return nil
}

func (p patientProfile) applyTo(patient *entity.Patient) {
	patient.Name = strings.TrimSpace(p.Name)
	patient.Age = p.Age
	patient.Gender = strings.TrimSpace(p.Gender)
	patient.Contact = strings.TrimSpace(p.Contact)
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
