package bootstrap

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-medical-scheduling/config"
	"go-medical-scheduling/internal/delivery/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Port: "0", Env: "test", LogLevel: "error", TimeZone: "UTC"},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Lock:    config.LockConfig{Driver: config.LockLocal, Key: "scheduler:lock:test", TTL: time.Second, RetryInterval: 5 * time.Millisecond},
		Scheduling: config.SchedulingConfig{
			SlotPolicy: config.SlotPolicyHourly, DayStartHour: 9, DayEndHour: 12, DaysAhead: 2, JournalEnabled: true,
		},
	}
}

func TestNewWithConfig_Memory(t *testing.T) {
	app, err := NewWithConfig(context.Background(), testConfig(), quietLogger())
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Reconcile(context.Background()))

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// the hourly policy opens 9, 10 and 11 o'clock today and tomorrow;
	// today's may already be past
	p, err := app.Usecases.Practitioners.Register(context.Background(), &dto.CreatePractitionerRequest{Name: "Dr. A", Specialty: "ENT"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.AvailableSlots, 3)
	assert.LessOrEqual(t, p.AvailableSlots, 6)
}

func TestNewWithConfig_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Storage.Driver = config.StorageRedis
	cfg.Lock.Driver = config.LockRedis
	cfg.Redis = config.RedisConfig{Host: host, Port: port}

	app, err := NewWithConfig(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	defer app.Close()
	require.NotNil(t, app.RedisClient)

	patient, err := app.Usecases.Patients.Register(context.Background(), &dto.CreatePatientRequest{
		Name: "Budi", Age: 40, Gender: "Male", Contact: "0811111111",
	})
	require.NoError(t, err)
	assert.Equal(t, "P1000", patient.ID)
	assert.True(t, mr.Exists("scheduler:store:patients"))
}

func TestNewWithConfig_RedisUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Lock.Driver = config.LockRedis
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: "1"}

	_, err := NewWithConfig(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewWithConfig(context.Background(), testConfig(), quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_CancelledBeforeStartClosesApp(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Lock.Driver = config.LockRedis
	cfg.Redis = config.RedisConfig{Host: host, Port: port}

	app, err := NewWithConfig(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Run(ctx))
	assert.ErrorIs(t, app.RedisClient.Ping(context.Background()).Err(), redis.ErrClosed)
}
