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

// PractitionerUsecase is the practitioner registry. It owns the
// available-slot sets but knows nothing about appointments; slot changes
// that must respect bookings go through AppointmentUsecase.OpenSlot and
// CloseSlot instead.
type PractitionerUsecase interface {
	Register(ctx context.Context, req *dto.CreatePractitionerRequest) (*dto.PractitionerResponse, error)
	Get(ctx context.Context, id string) (*dto.PractitionerResponse, error)
	List(ctx context.Context) (*dto.PractitionerListResponse, error)
	HasSlot(ctx context.Context, id string, at time.Time) (bool, error)
	AddSlot(ctx context.Context, id string, at time.Time) (*dto.PractitionerResponse, error)
	RemoveSlot(ctx context.Context, id string, at time.Time) (bool, error)
}

type practitionerUsecase struct {
	practitionerAccess
	log              *logrus.Logger
	section          section
	practitionerRepo repository.PractitionerRepository
	slotPolicy       service.SlotPolicy
	audit            service.AuditService
	now              func() time.Time
}

func NewPractitionerUsecase(
	log *logrus.Logger,
	locker lock.Locker,
	m *metrics.AllocatorMetrics,
	practitionerRepo repository.PractitionerRepository,
	slotPolicy service.SlotPolicy,
	audit service.AuditService,
) PractitionerUsecase {
	return &practitionerUsecase{
		practitionerAccess: practitionerAccess{log: log, repo: practitionerRepo},
		log:                log,
		section:            newSection(locker, m),
		practitionerRepo:   practitionerRepo,
		slotPolicy:         slotPolicy,
		audit:              audit,
		now:                time.Now,
	}
}

// Register creates a practitioner. Without explicit slots the slot policy
// decides the initial availability.
func (u *practitionerUsecase) Register(ctx context.Context, req *dto.CreatePractitionerRequest) (*dto.PractitionerResponse, error) {
	var created entity.Practitioner

	err := u.section.run(ctx, func(ctx context.Context) error {
		// Step 1: Validate profile and supplied slots
		name := strings.TrimSpace(req.Name)
		specialty := strings.TrimSpace(req.Specialty)
		if name == "" {
			return newValidationError("name", "practitioner name is required")
		}
		if specialty == "" {
			return newValidationError("specialty", "specialty is required")
		}

		now := u.now()
		for _, at := range req.Slots {
			if at.IsZero() || !at.After(now) {
				return newValidationError("slots", "slots must be in the future")
			}
		}

		// Step 2: Allocate ID
		id, err := service.NextID[entity.Practitioner](ctx, u.practitionerRepo, service.PractitionerIDPrefix, service.PractitionerIDSeed)
		if err != nil {
			u.log.Warnf("Failed to scan practitioner ids: %+v", err)
			return storageError("scan practitioners", err)
		}

		practitioner := entity.Practitioner{
			ID:        id,
			Name:      name,
			Specialty: specialty,
			CreatedAt: now.UTC(),
			UpdatedAt: now.UTC(),
		}

		// Step 3: Initial availability
		slots := req.Slots
		if len(slots) == 0 {
			slots = u.slotPolicy.DefaultSlots(now)
		}
		practitioner.SetSlots(slots)

		if err := u.savePractitioner(ctx, practitioner); err != nil {
			return err
		}

		_ = u.audit.LogCreate(ctx, entity.AuditActionPractitionerRegister, "practitioner", practitioner.ID, map[string]interface{}{
			"name":      practitioner.Name,
			"specialty": practitioner.Specialty,
			"slots":     len(practitioner.Slots),
		})
		created = practitioner
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Practitioner registered: id=%s, slots=%d", created.ID, len(created.Slots))
	return converter.PractitionerToResponse(&created), nil
}

func (u *practitionerUsecase) Get(ctx context.Context, id string) (*dto.PractitionerResponse, error) {
	var practitioner entity.Practitioner

	err := u.section.run(ctx, func(ctx context.Context) error {
		var err error
		practitioner, err = u.practitionerEntity(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return converter.PractitionerToResponse(&practitioner), nil
}

func (u *practitionerUsecase) List(ctx context.Context) (*dto.PractitionerListResponse, error) {
	var practitioners []entity.Practitioner

	err := u.section.run(ctx, func(ctx context.Context) error {
		all, err := u.practitionerRepo.LoadAll(ctx)
		if err != nil {
			u.log.Warnf("Failed to load practitioners: %+v", err)
			return storageError("load practitioners", err)
		}
		practitioners = make([]entity.Practitioner, 0, len(all))
		for _, p := range all {
			practitioners = append(practitioners, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(practitioners, func(i, j int) bool {
		return entity.LessID(practitioners[i].ID, practitioners[j].ID)
	})
	return &dto.PractitionerListResponse{
		Practitioners: converter.PractitionersToResponses(practitioners),
		Total:         len(practitioners),
	}, nil
}

func (u *practitionerUsecase) HasSlot(ctx context.Context, id string, at time.Time) (bool, error) {
	var has bool

	err := u.section.run(ctx, func(ctx context.Context) error {
		practitioner, err := u.practitionerEntity(ctx, id)
		if err != nil {
			return err
		}
		has = practitioner.HasSlot(at)
		return nil
	})
	return has, err
}

// AddSlot adds at to the set and persists; adding a present slot is a no-op
func (u *practitionerUsecase) AddSlot(ctx context.Context, id string, at time.Time) (*dto.PractitionerResponse, error) {
	var practitioner entity.Practitioner

	err := u.section.run(ctx, func(ctx context.Context) error {
		if at.IsZero() {
			return newValidationError("time", "slot time is required")
		}

		var err error
		practitioner, err = u.practitionerEntity(ctx, id)
		if err != nil {
			return err
		}
		if practitioner.HasSlot(at) {
			return nil
		}

		practitioner.AddSlot(at)
		practitioner.UpdatedAt = u.now().UTC()
		return u.savePractitioner(ctx, practitioner)
	})
	if err != nil {
		return nil, err
	}

	return converter.PractitionerToResponse(&practitioner), nil
}

// RemoveSlot reports whether at was present
func (u *practitionerUsecase) RemoveSlot(ctx context.Context, id string, at time.Time) (bool, error) {
	var removed bool

	err := u.section.run(ctx, func(ctx context.Context) error {
		practitioner, err := u.practitionerEntity(ctx, id)
		if err != nil {
			return err
		}
		if !practitioner.RemoveSlot(at) {
			return nil
		}

		practitioner.UpdatedAt = u.now().UTC()
		if err := u.savePractitioner(ctx, practitioner); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}
