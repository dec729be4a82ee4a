package settings

import (
	"context"

	"github.com/tsaci/backend/internal/domain/settings"
	"go.uber.org/zap"
)

// SettingInput contains one key-value pair to store
type SettingInput struct {
	Key         string
	Value       string
	Type        settings.ValueType
	Description string
}

// SettingsService manages the admin key-value configuration store
type SettingsService struct {
	settingRepo settings.SettingRepository
	logger      *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingRepo settings.SettingRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{settingRepo: settingRepo, logger: logger}
}

// List returns all settings ordered by key
func (s *SettingsService) List(ctx context.Context) ([]settings.Setting, error) {
	return s.settingRepo.FindAll(ctx)
}

// Get returns one setting by its key
func (s *SettingsService) Get(ctx context.Context, key string) (*settings.Setting, error) {
	return s.settingRepo.FindByKey(ctx, key)
}

// Set creates or overwrites one setting
func (s *SettingsService) Set(ctx context.Context, input SettingInput) (*settings.Setting, error) {
	setting, err := settings.NewSetting(input.Key, input.Value, input.Type, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		s.logger.Error("Failed to store setting", zap.String("key", input.Key), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Setting stored", zap.String("key", setting.Key))
	return s.settingRepo.FindByKey(ctx, setting.Key)
}

// SetBulk stores many settings, skipping invalid entries, and returns how
// many were written
func (s *SettingsService) SetBulk(ctx context.Context, inputs []SettingInput) (int, error) {
	stored := 0
	for _, input := range inputs {
		setting, err := settings.NewSetting(input.Key, input.Value, input.Type, input.Description)
		if err != nil {
			s.logger.Warn("Skipped invalid setting", zap.String("key", input.Key), zap.Error(err))
			continue
		}
		if err := s.settingRepo.Upsert(ctx, setting); err != nil {
			return stored, err
		}
		stored++
	}

	s.logger.Info("Bulk settings stored", zap.Int("count", stored))
	return stored, nil
}

// Delete removes one setting by its key
func (s *SettingsService) Delete(ctx context.Context, key string) error {
	if err := s.settingRepo.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("Setting deleted", zap.String("key", key))
	return nil
}
