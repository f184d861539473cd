package database

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"comercio/internal/config"
	"comercio/internal/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, m.Migrate())
	return m
}

func TestNew(t *testing.T) {
	m, err := New(config.DatabaseConfig{Path: "x.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", m.Driver())

	m, err = New(config.DatabaseConfig{Driver: "postgres", DSN: "host=localhost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", m.Driver())

	_, err = New(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)

	_, err = New(config.DatabaseConfig{Driver: "postgres"})
	assert.Error(t, err)
}

func TestMigrate_CreatesTables(t *testing.T) {
	m := newTestManager(t)

	err := m.Run(func(db *gorm.DB) error {
		for _, table := range []string{"products", "customers", "suppliers"} {
			if !db.Migrator().HasTable(table) {
				return fmt.Errorf("table %s missing", table)
			}
		}
		return nil
	})
	assert.NoError(t, err)

	// Running it again is harmless.
	assert.NoError(t, m.Migrate())
}

func TestRun_PersistsAcrossCalls(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Run(func(db *gorm.DB) error {
		return db.Create(&models.Product{Name: "Shirt", Price: 10, Size: models.SizeM, Stock: 2}).Error
	}))

	var count int64
	require.NoError(t, m.Run(func(db *gorm.DB) error {
		return db.Model(&models.Product{}).Count(&count).Error
	}))
	assert.Equal(t, int64(1), count)
}

func TestRun_ReturnsStatementError(t *testing.T) {
	m := newTestManager(t)
	sentinel := errors.New("boom")

	err := m.Run(func(db *gorm.DB) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestRun_SizeCheckConstraint(t *testing.T) {
	m := newTestManager(t)

	err := m.Run(func(db *gorm.DB) error {
		return db.Create(&models.Product{Name: "Hat", Size: "XL"}).Error
	})
	assert.Error(t, err)
}

func TestIsDuplicate(t *testing.T) {
	m := newTestManager(t)

	create := func() error {
		return m.Run(func(db *gorm.DB) error {
			return db.Create(&models.Customer{Name: "Ana", Email: "ana@example.com"}).Error
		})
	}
	require.NoError(t, create())

	err := create()
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))

	assert.False(t, IsDuplicate(nil))
	assert.False(t, IsDuplicate(errors.New("disk full")))
	assert.True(t, IsDuplicate(fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey)))
}

func TestRun_FailingStatementLoggedOnceAtError(t *testing.T) {
	m := newTestManager(t)

	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	err := m.Run(func(db *gorm.DB) error {
		return db.Exec("INSERT INTO missing_table (id) VALUES (1)").Error
	})
	require.Error(t, err)

	levels := map[string]int{}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		level, _ := line["level"].(string)
		levels[level]++
		if _, ok := line["sql"]; ok {
			assert.Equal(t, "trace", level)
		}
	}
	assert.Equal(t, 1, levels["error"])
	assert.Zero(t, levels["debug"])
}
