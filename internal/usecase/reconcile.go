package usecase

import (
	"context"
	"errors"
	"time"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/domain/entity"
)

// Reconcile repairs the effects of multi-entity writes that were interrupted
// before their intent was cleared. Each repair only moves state forward to
// what the persisted appointment says, so running it twice is harmless.
func (u *appointmentUsecase) Reconcile(ctx context.Context) (*dto.ReconcileResponse, error) {
	result := &dto.ReconcileResponse{}

	err := u.section.run(ctx, func(ctx context.Context) error {
		pending, err := u.journal.Pending(ctx)
		if err != nil {
			return storageError("load intents", err)
		}
		result.Pending = len(pending)
		u.metrics.SetPendingIntents(len(pending))

		for _, intent := range pending {
			repaired, err := u.reconcileIntent(ctx, intent)
			if err != nil {
				u.log.Errorf("Failed to reconcile %s intent %s for appointment %s: %+v", intent.Kind, intent.ID, intent.AppointmentID, err)
				return err
			}
			if err := u.journal.Complete(ctx, intent.ID); err != nil {
				return storageError("clear intent", err)
			}
			if repaired {
				result.Repaired++
				_ = u.audit.LogUpdate(ctx, entity.AuditActionIntentReconcile, "appointment", intent.AppointmentID, nil, map[string]interface{}{
					"intent": string(intent.Kind),
				})
			}
		}
		return nil
	})
	u.section.observe("reconcile", err, result.Repaired == 0)
	if err != nil {
		return nil, err
	}

	if result.Pending > 0 {
		u.log.Infof("Reconciled intents: pending=%d, repaired=%d", result.Pending, result.Repaired)
	}
	return result, nil
}

func (u *appointmentUsecase) reconcileIntent(ctx context.Context, intent entity.Intent) (bool, error) {
	appointment, found, err := u.appointmentRepo.FindByID(ctx, intent.AppointmentID)
	if err != nil {
		return false, storageError("find appointment", err)
	}

	practitioner, err := u.practitioners.practitionerEntity(ctx, intent.PractitionerID)
	if err != nil {
		if errors.Is(err, ErrPractitionerNotFound) {
			u.log.Warnf("Dropping %s intent %s: practitioner %s no longer exists", intent.Kind, intent.ID, intent.PractitionerID)
			return false, nil
		}
		return false, err
	}

	var slotsChanged, patientChanged bool
	var patient entity.Patient

	switch intent.Kind {
	case entity.IntentKindBook:
		if !found {
			// appointment never persisted: give the slot back
			slotsChanged, err = u.restoreSlot(ctx, &practitioner, intent.NewTime)
			if err != nil {
				return false, err
			}
			break
		}
		if appointment.IsBooked() && appointment.ScheduledAt.Equal(intent.NewTime) {
			slotsChanged = ensureSlot(&practitioner, intent.NewTime, false)
		}
		patient, err = u.patients.patientEntity(ctx, appointment.PatientID)
		if err != nil && !errors.Is(err, ErrPatientNotFound) {
			return false, err
		}
		if err == nil && !patient.HasAppointment(appointment.ID) {
			patient.AddAppointment(appointment.ID)
			patientChanged = true
		}

	case entity.IntentKindCancel:
		if found && appointment.IsCancelled() {
			slotsChanged, err = u.restoreSlot(ctx, &practitioner, intent.OldTime)
			if err != nil {
				return false, err
			}
		}

	case entity.IntentKindReschedule:
		if found && appointment.IsBooked() && appointment.ScheduledAt.Equal(intent.NewTime) {
			added, err := u.restoreSlot(ctx, &practitioner, intent.OldTime)
			if err != nil {
				return false, err
			}
			removed := ensureSlot(&practitioner, intent.NewTime, false)
			slotsChanged = added || removed
		}

	default:
		u.log.Warnf("Dropping intent %s of unknown kind %q", intent.ID, intent.Kind)
	}

	if slotsChanged {
		practitioner.UpdatedAt = u.now().UTC()
		if err := u.practitioners.savePractitioner(ctx, practitioner); err != nil {
			return false, err
		}
	}
	if patientChanged {
		patient.UpdatedAt = u.now().UTC()
		if err := u.patients.savePatient(ctx, patient); err != nil {
			return false, err
		}
	}
	return slotsChanged || patientChanged, nil
}

// restoreSlot reopens at unless another booked appointment already holds it.
func (u *appointmentUsecase) restoreSlot(ctx context.Context, p *entity.Practitioner, at time.Time) (bool, error) {
	claimed, err := u.isClaimed(ctx, p.ID, at)
	if err != nil {
		return false, err
	}
	if claimed {
		u.log.Warnf("Slot %s of practitioner %s is held by a booked appointment; leaving it closed", at.Format(time.RFC3339), p.ID)
		return false, nil
	}
	return ensureSlot(p, at, true), nil
}

// ensureSlot makes the presence of at match want and reports whether the
// set changed.
func ensureSlot(p *entity.Practitioner, at time.Time, want bool) bool {
	if p.HasSlot(at) == want {
		return false
	}
	if want {
		p.AddSlot(at)
	} else {
		p.RemoveSlot(at)
	}
	return true
}
