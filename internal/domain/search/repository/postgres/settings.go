// Package postgres contains gorm repositories for the search domain
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) deps.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the value for key; a missing row is not an error
func (r *settingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	// Find, not First: gorm logs ErrRecordNotFound and absent keys are routine
	var settings []entities.Setting
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		Limit(1).
		Find(&settings).Error
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	if len(settings) == 0 {
		return "", false, nil
	}
	return settings[0].Value, true, nil
}

// Upsert creates or replaces the value for key in one statement
func (r *settingsRepository) Upsert(ctx context.Context, key, value string) error {
	setting := entities.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key
func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&entities.Setting{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
