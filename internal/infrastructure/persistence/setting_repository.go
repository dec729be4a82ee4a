package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/tsaci/backend/internal/domain/settings"
	"github.com/tsaci/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository implements SettingRepository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindAll finds all settings ordered by key
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	var items []settings.Setting
	if err := r.db.WithContext(ctx).Order("config_key ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByKey finds one setting by its key
func (r *GormSettingRepository) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	var setting settings.Setting
	if err := r.db.WithContext(ctx).Where("config_key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert creates the setting or overwrites the existing value under its key
// in one statement
func (r *GormSettingRepository) Upsert(ctx context.Context, setting *settings.Setting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"config_value": setting.Value,
			"config_type":  setting.Type,
			"description":  setting.Description,
			"updated_at":   time.Now(),
		}),
	}).Create(setting).Error
}

// Delete deletes a setting by its key
func (r *GormSettingRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Delete(&settings.Setting{}, "config_key = ?", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
