package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	DBPath                  string
	LogLevel                string
	ImportWorkerCount       int
	ImportQueueSize         int
	ReminderIntervalMinutes int
	Timezone                string
	DailyGoal               int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                    envOr("ADDR", ":8080"),
		DBPath:                  envOr("DB_PATH", "file:lexiflash.db"),
		LogLevel:                envOr("LOG_LEVEL", "INFO"),
		ImportWorkerCount:       envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:         envIntOr("IMPORT_QUEUE_SIZE", 16),
		ReminderIntervalMinutes: envIntOr("REMINDER_INTERVAL_MINUTES", 60),
		Timezone:                envOr("TIMEZONE", "UTC"),
		DailyGoal:               envIntOr("DAILY_GOAL", 20),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.ImportWorkerCount < 1 || c.ImportWorkerCount > 32 {
		errs = append(errs, fmt.Errorf("IMPORT_WORKER_COUNT must be between 1 and 32 (got %d)", c.ImportWorkerCount))
	}
	if c.ImportQueueSize < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_QUEUE_SIZE must be positive (got %d)", c.ImportQueueSize))
	}
	if c.ReminderIntervalMinutes < 0 {
		errs = append(errs, fmt.Errorf("REMINDER_INTERVAL_MINUTES cannot be negative (got %d)", c.ReminderIntervalMinutes))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a known location: %v", c.Timezone, err))
	}
	if c.DailyGoal < 0 {
		errs = append(errs, fmt.Errorf("DAILY_GOAL cannot be negative (got %d)", c.DailyGoal))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
