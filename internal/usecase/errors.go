package usecase

import (
	"errors"
	"fmt"
	"time"

	"go-medical-scheduling/internal/observability/metrics"
)

// Error kinds. Every error returned by a usecase matches at most one of them
// with errors.Is; anything else is an infrastructure failure.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrStorage         = errors.New("storage failure")
)

var (
	ErrPatientNotFound      = fmt.Errorf("patient %w", ErrNotFound)
	ErrPractitionerNotFound = fmt.Errorf("practitioner %w", ErrNotFound)
	ErrAppointmentNotFound  = fmt.Errorf("appointment %w", ErrNotFound)
	ErrHealthRecordNotFound = fmt.Errorf("health record %w", ErrNotFound)

	ErrAppointmentCancelled = &ValidationError{Field: "status", Message: "appointment is cancelled"}
	ErrAppointmentCompleted = &ValidationError{Field: "status", Message: "appointment is completed"}
	ErrTimeInPast           = &ValidationError{Field: "scheduled_at", Message: "time must be in the future"}
)

// ValidationError describes caller input that can never succeed as given.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func slotUnavailable(practitionerID string, at time.Time) error {
	return fmt.Errorf("%w: practitioner %s has no open slot at %s", ErrSlotUnavailable, practitionerID, at.Format(time.RFC3339))
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// outcomeOf maps an operation result to its metrics label
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrSlotUnavailable):
		return metrics.OutcomeSlotUnavailable
	case errors.Is(err, ErrStorage):
		return metrics.OutcomeStorage
	}
	return metrics.OutcomeError
}
