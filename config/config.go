package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	LockLocal = "local"
	LockRedis = "redis"

	SlotPolicyHourly = "hourly"
	SlotPolicyNone   = "none"
)

type Config struct {
	App        AppConfig
	Storage    StorageConfig
	DB         DBConfig
	Redis      RedisConfig
	Lock       LockConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
	TimeZone string
}

type StorageConfig struct {
	Driver string
	Dir    string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type LockConfig struct {
	Driver        string
	Key           string
	TTL           time.Duration
	RetryInterval time.Duration
}

type SchedulingConfig struct {
	SlotPolicy     string
	DayStartHour   int
	DayEndHour     int
	DaysAhead      int
	JournalEnabled bool
}

// Location resolves App.TimeZone; calendar-day queries and the slot grid use it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.TimeZone, err)
	}
	return loc, nil
}

// LoadConfig reads settings from the environment. A .env file in the working
// directory, when present, is loaded first; real environment variables win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
			TimeZone: v.GetString("APP_TIMEZONE"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("STORAGE_DRIVER"),
			Dir:    v.GetString("STORAGE_DIR"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Lock: LockConfig{
			Driver:        v.GetString("LOCK_DRIVER"),
			Key:           v.GetString("LOCK_KEY"),
			TTL:           v.GetDuration("LOCK_TTL"),
			RetryInterval: v.GetDuration("LOCK_RETRY_INTERVAL"),
		},
		Scheduling: SchedulingConfig{
			SlotPolicy:     v.GetString("SLOT_POLICY"),
			DayStartHour:   v.GetInt("SLOT_DAY_START_HOUR"),
			DayEndHour:     v.GetInt("SLOT_DAY_END_HOUR"),
			DaysAhead:      v.GetInt("SLOT_DAYS_AHEAD"),
			JournalEnabled: v.GetBool("INTENT_JOURNAL_ENABLED"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_TIMEZONE", "UTC")

	v.SetDefault("STORAGE_DRIVER", StorageFile)
	v.SetDefault("STORAGE_DIR", "data")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "scheduling")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOCK_DRIVER", LockLocal)
	v.SetDefault("LOCK_KEY", "scheduler:lock:allocator")
	v.SetDefault("LOCK_TTL", 30*time.Second)
	v.SetDefault("LOCK_RETRY_INTERVAL", 25*time.Millisecond)

	v.SetDefault("SLOT_POLICY", SlotPolicyHourly)
	v.SetDefault("SLOT_DAY_START_HOUR", 9)
	v.SetDefault("SLOT_DAY_END_HOUR", 17)
	v.SetDefault("SLOT_DAYS_AHEAD", 30)
	v.SetDefault("INTENT_JOURNAL_ENABLED", true)
}

// Validate rejects unknown drivers and impossible scheduling windows
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageFile, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Lock.Driver {
	case LockLocal, LockRedis:
	default:
		return fmt.Errorf("unknown LOCK_DRIVER %q", c.Lock.Driver)
	}
	if c.Lock.Driver == LockRedis && (c.Lock.TTL <= 0 || c.Lock.RetryInterval <= 0) {
		return errors.New("LOCK_TTL and LOCK_RETRY_INTERVAL must be positive")
	}

	switch c.Scheduling.SlotPolicy {
	case SlotPolicyHourly, SlotPolicyNone:
	default:
		return fmt.Errorf("unknown SLOT_POLICY %q", c.Scheduling.SlotPolicy)
	}
	s := c.Scheduling
	if s.DayStartHour < 0 || s.DayEndHour > 24 || s.DayStartHour >= s.DayEndHour {
		return fmt.Errorf("invalid slot day window %d..%d", s.DayStartHour, s.DayEndHour)
	}
	if s.DaysAhead < 0 {
		return fmt.Errorf("SLOT_DAYS_AHEAD must not be negative")
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
