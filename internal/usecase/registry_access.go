package usecase

import (
	"context"

	"go-medical-scheduling/internal/domain/entity"
	"go-medical-scheduling/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// patientAccess and practitionerAccess are the single-entity reads and
// writes shared by the registries and the allocator. They take no lock;
// callers run them inside the section.

type patientAccess struct {
	log  *logrus.Logger
	repo repository.PatientRepository
}

func (a patientAccess) patientEntity(ctx context.Context, id string) (entity.Patient, error) {
	patient, found, err := a.repo.FindByID(ctx, id)
	if err != nil {
		a.log.Warnf("Failed to find patient %s: %+v", id, err)
		return entity.Patient{}, storageError("find patient", err)
	}
	if !found {
		return entity.Patient{}, ErrPatientNotFound
	}
	return patient, nil
}

func (a patientAccess) savePatient(ctx context.Context, patient entity.Patient) error {
	if err := a.repo.Save(ctx, patient); err != nil {
		a.log.Warnf("Failed to save patient %s: %+v", patient.ID, err)
		return storageError("save patient", err)
	}
	return nil
}

type practitionerAccess struct {
	log  *logrus.Logger
	repo repository.PractitionerRepository
}

func (a practitionerAccess) practitionerEntity(ctx context.Context, id string) (entity.Practitioner, error) {
	practitioner, found, err := a.repo.FindByID(ctx, id)
	if err != nil {
		a.log.Warnf("Failed to find practitioner %s: %+v", id, err)
		return entity.Practitioner{}, storageError("find practitioner", err)
	}
	if !found {
		return entity.Practitioner{}, ErrPractitionerNotFound
	}
	return practitioner, nil
}

func (a practitionerAccess) savePractitioner(ctx context.Context, practitioner entity.Practitioner) error {
	if err := a.repo.Save(ctx, practitioner); err != nil {
		a.log.Warnf("Failed to save practitioner %s: %+v", practitioner.ID, err)
		return storageError("save practitioner", err)
	}
	return nil
}
