package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storyloom/internal/models"
)

type FontSettingsRepository interface {
	Get(ctx context.Context) (*models.FontSettings, error)
	Update(ctx context.Context, settings *models.FontSettings) error
}

type fontSettingsRepository struct {
	db *gorm.DB
}

func NewFontSettingsRepository(db *gorm.DB) FontSettingsRepository {
	return &fontSettingsRepository{db: db}
}

func (r *fontSettingsRepository) Get(ctx context.Context) (*models.FontSettings, error) {
	var settings models.FontSettings
	if err := r.db.WithContext(ctx).First(&settings, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultFontSettings(), nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *fontSettingsRepository) Update(ctx context.Context, settings *models.FontSettings) error {
	// Single-row table
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
