package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-medical-scheduling/internal/domain/entity"
	"go-medical-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IntentJournal records allocator operations that write more than one
// entity. An intent is persisted before the first write and removed after
// the last, so any intent still present at startup marks an interrupted
// sequence that must be reconciled.
type IntentJournal interface {
	Begin(ctx context.Context, intent entity.Intent) (string, error)
	Complete(ctx context.Context, id string) error
	Pending(ctx context.Context) ([]entity.Intent, error)
}

type intentJournal struct {
	log   *logrus.Logger
	store repository.IntentRepository
}

func NewIntentJournal(log *logrus.Logger, store repository.IntentRepository) IntentJournal {
	return &intentJournal{
		log:   log,
		store: store,
	}
}

func (j *intentJournal) Begin(ctx context.Context, intent entity.Intent) (string, error) {
	intent.ID = uuid.NewString()
	intent.CreatedAt = time.Now().UTC()

	if err := j.store.Save(ctx, intent); err != nil {
		j.log.Warnf("Failed to record %s intent for appointment %s: %+v", intent.Kind, intent.AppointmentID, err)
		return "", fmt.Errorf("record intent: %w", err)
	}
	return intent.ID, nil
}

func (j *intentJournal) Complete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := j.store.Delete(ctx, id); err != nil {
		j.log.Warnf("Failed to clear intent %s: %+v", id, err)
		return fmt.Errorf("clear intent: %w", err)
	}
	return nil
}

// Pending returns the outstanding intents, oldest first
func (j *intentJournal) Pending(ctx context.Context) ([]entity.Intent, error) {
	all, err := j.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load intents: %w", err)
	}

	intents := make([]entity.Intent, 0, len(all))
	for _, i := range all {
		intents = append(intents, i)
	}
	sort.Slice(intents, func(a, b int) bool {
		if !intents[a].CreatedAt.Equal(intents[b].CreatedAt) {
			return intents[a].CreatedAt.Before(intents[b].CreatedAt)
		}
		return intents[a].ID < intents[b].ID
	})
	return intents, nil
}

type noopJournal struct{}

// NewNoopIntentJournal disables write-ahead recording
func NewNoopIntentJournal() IntentJournal {
	return noopJournal{}
}

func (noopJournal) Begin(context.Context, entity.Intent) (string, error) { return "", nil }
func (noopJournal) Complete(context.Context, string) error               { return nil }
func (noopJournal) Pending(context.Context) ([]entity.Intent, error)     { return nil, nil }
