// Package db opens the gorm database handle used by the persistence layer.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tdseries/internal/feature/timeseries/adapters/store"
)

// Config holds database connection settings.
type Config struct {
	Driver string // "sqlite" (default) or "postgres"
	DSN    string // postgres DSN, or sqlite file path
}

// defaultSQLitePath is the sqlite file used when no DSN is configured.
const defaultSQLitePath = "tdseries.db"

// LoadConfigFromEnv reads the database configuration from DB_DRIVER and
// DB_DSN. Without configuration a local sqlite file is used.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver: os.Getenv("DB_DRIVER"),
		DSN:    os.Getenv("DB_DSN"),
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.Driver == "sqlite" && cfg.DSN == "" {
		cfg.DSN = defaultSQLitePath
	}
	return cfg
}

// Opener opens a gorm handle for a DSN. Extracted so retry logic is
// testable without a running database.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the Opener matching the configured driver.
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	case "postgres":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", driver)
}

// ConnectWithRetry opens the database, retrying every 3 seconds until the
// timeout elapses. Container orchestration can start the database after the
// service; the retry covers that window.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB opens the configured database and optionally runs migrations when
// RUN_MIGRATIONS=true. Any failure is fatal; the process cannot serve
// without a database.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	open, err := OpenerFor(cfg.Driver)
	if err != nil {
		log.Fatalf("failed to configure database: %v", err)
	}

	db, err := ConnectWithRetry(cfg.DSN, 60*time.Second, open)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(&store.BarModel{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
