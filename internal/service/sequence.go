package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	domainRepo "go-medical-scheduling/internal/domain/repository"
)

// ID prefixes and seeds per entity type
const (
	PatientIDPrefix      = "P"
	PatientIDSeed        = 1000
	PractitionerIDPrefix = "D"
	PractitionerIDSeed   = 1
	AppointmentIDPrefix  = "A"
	AppointmentIDSeed    = 5000
	HealthRecordIDPrefix = "R"
	HealthRecordIDSeed   = 3000
)

// Sequence hands out prefix+counter identifiers. It does no locking of its
// own: callers must hold the allocator section while calling Next.
type Sequence struct {
	prefix string
	next   int64
}

// NewSequence starts after the highest numeric suffix among existing IDs that
// carry prefix, or at seed when there are none. Malformed IDs are skipped.
func NewSequence(prefix string, seed int64, existing []string) *Sequence {
	s := &Sequence{prefix: prefix, next: seed}

	found := false
	var max int64
	for _, id := range existing {
		n, ok := parseSuffix(prefix, id)
		if !ok {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}
	if found {
		s.next = max + 1
	}
	return s
}

// LoadSequence seeds a Sequence from every ID persisted in store plus the
// reserved IDs, which are taken but possibly not yet persisted.
func LoadSequence[T domainRepo.Entity[T]](ctx context.Context, store domainRepo.Store[T], prefix string, seed int64, reserved ...string) (*Sequence, error) {
	all, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan %s ids: %w", prefix, err)
	}

	ids := make([]string, 0, len(all)+len(reserved))
	for id := range all {
		ids = append(ids, id)
	}
	ids = append(ids, reserved...)
	return NewSequence(prefix, seed, ids), nil
}

// NextID rescans store and returns the next free ID. Scanning on every
// allocation keeps processes that share storage and the lock from handing
// out the same ID; callers hold the allocator section until the new entity
// is saved.
func NextID[T domainRepo.Entity[T]](ctx context.Context, store domainRepo.Store[T], prefix string, seed int64, reserved ...string) (string, error) {
	seq, err := LoadSequence(ctx, store, prefix, seed, reserved...)
	if err != nil {
		return "", err
	}
	return seq.Next(), nil
}

func (s *Sequence) Next() string {
	id := s.prefix + strconv.FormatInt(s.next, 10)
	s.next++
	return id
}

func parseSuffix(prefix, id string) (int64, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	digits := id[len(prefix):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
