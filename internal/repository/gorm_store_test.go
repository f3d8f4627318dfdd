package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-medical-scheduling/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var appointmentColumns = []string{
	"id", "patient_id", "practitioner_id", "scheduled_at", "status", "reason", "created_at", "updated_at",
}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormStore_FindByID(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewGormStore[entity.Appointment](db)
	at := time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow("A5000", "P1000", "D1", at, "BOOKED", "checkup", at, at))

	got, found, err := store.FindByID(context.Background(), "A5000")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "P1000", got.PatientID)
	assert.Equal(t, entity.AppointmentStatusBooked, got.Status)
	assert.True(t, got.ScheduledAt.Equal(at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_FindByID_NotFound(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewGormStore[entity.Appointment](db)

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, found, err := store.FindByID(context.Background(), "A404")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_LoadAll(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewGormStore[entity.Appointment](db)
	at := time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow("A5000", "P1000", "D1", at, "BOOKED", "", at, at).
			AddRow("A5001", "P1001", "D1", at.Add(time.Hour), "CANCELLED", "", at, at))

	all, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entity.AppointmentStatusCancelled, all["A5001"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_LoadAll_QueryError(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewGormStore[entity.Appointment](db)

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnError(errors.New("connection reset"))

	_, err := store.LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGormStore_Delete(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewGormStore[entity.Intent](db)

	mock.ExpectExec(`DELETE FROM "allocation_intents" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "6f1c0e9a-8a57-4f4e-9d59-4d1c2b0f5a11"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveAllEmptyClearsTable(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewGormStore[entity.Appointment](db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, store.SaveAll(context.Background(), map[string]entity.Appointment{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveAllRollsBackOnError(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewGormStore[entity.Appointment](db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "appointments"`).
		WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := store.SaveAll(context.Background(), nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
