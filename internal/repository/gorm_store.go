package repository

import (
	"context"
	"errors"
	"fmt"

	domainRepo "go-medical-scheduling/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const gormBatchSize = 100

// GormStore keeps a collection in the SQL table named by T's TableName.
type GormStore[T domainRepo.Entity[T]] struct {
	db *gorm.DB
}

func NewGormStore[T domainRepo.Entity[T]](db *gorm.DB) *GormStore[T] {
	return &GormStore[T]{db: db}
}

// SaveAll replaces the table contents inside a single transaction
func (s *GormStore[T]) SaveAll(ctx context.Context, entities map[string]T) error {
	rows := make([]T, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, e)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
			return fmt.Errorf("clear table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rows, gormBatchSize).Error; err != nil {
			return fmt.Errorf("insert rows: %w", err)
		}
		return nil
	})
}

func (s *GormStore[T]) LoadAll(ctx context.Context) (map[string]T, error) {
	var rows []T
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}

	out := make(map[string]T, len(rows))
	for _, e := range rows {
		out[e.Key()] = e
	}
	return out, nil
}

func (s *GormStore[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	var e T
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e, false, nil
		}
		return e, false, fmt.Errorf("find %s: %w", id, err)
	}
	return e, true, nil
}

// Save inserts e or overwrites every column of the existing row
func (s *GormStore[T]) Save(ctx context.Context, e T) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", e.Key(), err)
	}
	return nil
}

func (s *GormStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}
