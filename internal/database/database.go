// Package database opens a store connection per unit of work.
package database

import (
	"errors"
	"fmt"
	"strings"

	"comercio/internal/config"
	"comercio/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager opens a fresh connection for every call to Run and closes it
// afterwards. It keeps no connection state between calls.
type Manager struct {
	driver string
	dsn    string
	gcfg   *gorm.Config
}

// New creates a Manager for the configured driver.
func New(cfg config.DatabaseConfig) (*Manager, error) {
	m := &Manager{
		driver: cfg.Driver,
		gcfg: &gorm.Config{
			TranslateError: true,
			Logger:         newGormLogger(),
		},
	}
	switch cfg.Driver {
	case "", "sqlite":
		m.driver = "sqlite"
		m.dsn = cfg.Path
	case "postgres":
		m.dsn = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if m.dsn == "" {
		return nil, fmt.Errorf("no connection target configured for %s", m.driver)
	}
	return m, nil
}

// NewSQLite is a shorthand for a file-backed SQLite manager.
func NewSQLite(path string) (*Manager, error) {
	return New(config.DatabaseConfig{Driver: "sqlite", Path: path})
}

// Driver returns the dialect name in use.
func (m *Manager) Driver() string {
	return m.driver
}

func (m *Manager) dialector() gorm.Dialector {
	if m.driver == "postgres" {
		return postgres.Open(m.dsn)
	}
	return sqlite.Open(m.dsn)
}

// Run connects, hands the connection to fn and always closes it. Mutating
// statements issued by fn are committed as they run.
func (m *Manager) Run(fn func(db *gorm.DB) error) error {
	db, err := gorm.Open(m.dialector(), m.gcfg)
	if err != nil {
		log.Error().Err(err).Str("driver", m.driver).Msg("Failed to connect to database")
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close database connection")
		}
	}()

	if err := fn(db); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Str("driver", m.driver).Msg("Database statement failed")
		}
		return err
	}
	return nil
}

// Migrate creates or updates the products, customers and suppliers tables.
func (m *Manager) Migrate() error {
	err := m.Run(func(db *gorm.DB) error {
		return db.AutoMigrate(&models.Product{}, &models.Customer{}, &models.Supplier{})
	})
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Debug().Str("driver", m.driver).Msg("Tables created or verified")
	return nil
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
