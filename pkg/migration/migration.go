// Package migration provides a registry-based database migration runner.
//
// Each migration file registers itself from init():
//
//	func init() {
//	    migration.Register("20260101000000_create_items_table", &CreateItemsTable{})
//	}
//
// and is executed by the CLI: stockroom migrate / migrate:rollback /
// migrate:status.
package migration

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// migrationRecord is the GORM model stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "stockroom_migrations" }

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration to the global registry. name should be a
// timestamp-prefixed string so registration order matches chronology.
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

// New creates a Runner backed by the provided gorm.DB.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

func (r *Runner) ranSet() (map[string]bool, int, error) {
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, 0, err
	}

	set := make(map[string]bool, len(ran))
	maxBatch := 0
	for _, rec := range ran {
		set[rec.Name] = true
		if rec.Batch > maxBatch {
			maxBatch = rec.Batch
		}
	}
	return set, maxBatch, nil
}

// Up runs every pending migration as one new batch.
func (r *Runner) Up() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	ran, maxBatch, err := r.ranSet()
	if err != nil {
		return err
	}

	batch := maxBatch + 1
	applied := 0
	for _, reg := range registry {
		if ran[reg.name] {
			continue
		}

		logger.Info("migration: applying", "name", reg.name)
		if err := reg.m.Up(r.db); err != nil {
			return fmt.Errorf("migration %q: %w", reg.name, err)
		}
		if err := r.db.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration %q: record: %w", reg.name, err)
		}
		applied++
	}

	if applied == 0 {
		logger.Info("migration: nothing to migrate")
	}
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	_, maxBatch, err := r.ranSet()
	if err != nil {
		return err
	}
	if maxBatch == 0 {
		logger.Info("migration: nothing to rollback")
		return nil
	}

	var last []migrationRecord
	if err := r.db.Where("batch = ?", maxBatch).Order("id desc").Find(&last).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	for _, rec := range last {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration %q: not registered, cannot rollback", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration %q: down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&migrationRecord{}, rec.ID).Error; err != nil {
			return fmt.Errorf("migration %q: delete record: %w", rec.Name, err)
		}
	}
	return nil
}

// StatusRow pairs a migration name with whether it has run.
type StatusRow struct {
	Name string
	Ran  bool
}

// Status reports every registered migration and whether it has been applied.
func (r *Runner) Status() ([]StatusRow, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	ran, _, err := r.ranSet()
	if err != nil {
		return nil, err
	}

	rows := make([]StatusRow, 0, len(registry))
	for _, reg := range registry {
		rows = append(rows, StatusRow{Name: reg.name, Ran: ran[reg.name]})
	}
	return rows, nil
}
