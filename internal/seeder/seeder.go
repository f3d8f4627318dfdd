// Package seeder fills an empty installation with fake patients and
// practitioners for demos and load tests.
package seeder

import (
	"context"
	"fmt"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
)

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

type Result struct {
	PatientIDs      []string `json:"patient_ids"`
	PractitionerIDs []string `json:"practitioner_ids"`
}

type Seeder struct {
	log           *logrus.Logger
	faker         *gofakeit.Faker
	patients      usecase.PatientUsecase
	practitioners usecase.PractitionerUsecase
}

// New returns a seeder; seed 0 picks a random sequence
func New(log *logrus.Logger, seed uint64, patients usecase.PatientUsecase, practitioners usecase.PractitionerUsecase) *Seeder {
	return &Seeder{
		log:           log,
		faker:         gofakeit.New(seed),
		patients:      patients,
		practitioners: practitioners,
	}
}

// Run registers the requested number of each entity through the usecases,
// so IDs, slot policy and audit entries follow the normal path.
func (s *Seeder) Run(ctx context.Context, patientCount, practitionerCount int) (*Result, error) {
	result := &Result{}

	s.log.Infof("Seeding %d practitioners", practitionerCount)
	for i := 0; i < practitionerCount; i++ {
		p, err := s.practitioners.Register(ctx, &dto.CreatePractitionerRequest{
			Name:      "Dr. " + s.faker.Name(),
			Specialty: specialties[s.faker.Number(0, len(specialties)-1)],
		})
		if err != nil {
			return result, fmt.Errorf("seed practitioner %d: %w", i, err)
		}
		result.PractitionerIDs = append(result.PractitionerIDs, p.ID)
	}

	s.log.Infof("Seeding %d patients", patientCount)
	for i := 0; i < patientCount; i++ {
		p, err := s.patients.Register(ctx, &dto.CreatePatientRequest{
			Name:    s.faker.Name(),
			Age:     s.faker.Number(1, 95),
			Gender:  s.faker.Gender(),
			Contact: s.faker.Numerify("08########"),
		})
		if err != nil {
			return result, fmt.Errorf("seed patient %d: %w", i, err)
		}
		result.PatientIDs = append(result.PatientIDs, p.ID)
	}

	s.log.Info("Seed complete")
	return result, nil
}
