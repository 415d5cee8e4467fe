package mocks

import (
	"context"

	"storyloom/internal/models"
)

type FontSettingsRepositoryMock struct {
	GetFunc    func(ctx context.Context) (*models.FontSettings, error)
	UpdateFunc func(ctx context.Context, settings *models.FontSettings) error

	// Stored is returned by Get and replaced by Update when no func is set.
	Stored *models.FontSettings
}

func (m *FontSettingsRepositoryMock) Get(ctx context.Context) (*models.FontSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	if m.Stored == nil {
		return models.DefaultFontSettings(), nil
	}
	copied := *m.Stored
	return &copied, nil
}

func (m *FontSettingsRepositoryMock) Update(ctx context.Context, settings *models.FontSettings) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, settings)
	}
	copied := *settings
	copied.ID = 1
	m.Stored = &copied
	return nil
}
