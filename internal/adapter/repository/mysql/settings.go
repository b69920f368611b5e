package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lending-portal/internal/domain/settings"
)

type SettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var out settings.AppSetting
	res := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&out)
	if res.Error != nil {
		return "", res.Error
	}
	return out.SettingValue, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	var existing settings.AppSetting
	res := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&existing)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).
				Create(&settings.AppSetting{SettingKey: key, SettingValue: value}).Error
		}
		return res.Error
	}
	existing.SettingValue = value
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *SettingsRepository) ActiveTemplate(ctx context.Context, name string) (*settings.EmailTemplate, error) {
	var out settings.EmailTemplate
	res := r.db.WithContext(ctx).
		Where("template_name = ? AND is_active = ?", name, true).
		First(&out)
	return &out, res.Error
}
