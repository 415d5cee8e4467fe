package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storyloom/internal/models"
)

// Fixed data-file keys.
const (
	KeyPersona          = "Persona"
	KeyPersonaSettings  = "PersonaSettings"
	KeyPersonal         = "Personal"
	KeyPersonalSettings = "PersonalSettings"
)

// DataRepository is the generic key-value store behind every persisted
// collection. ReadData returns nil data (and no error) for a key that was
// never written.
type DataRepository interface {
	ReadData(ctx context.Context, key string) ([]byte, error)
	WriteData(ctx context.Context, key string, data []byte) error
}

type dataFileRepository struct {
	db *gorm.DB
}

func NewDataFileRepository(db *gorm.DB) DataRepository {
	return &dataFileRepository{db: db}
}

func (r *dataFileRepository) ReadData(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("data key is required")
	}
	var file models.DataFile
	if err := r.db.WithContext(ctx).Where(&models.DataFile{Key: key}).Take(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading data %s: %w", key, err)
	}
	return []byte(file.Data), nil
}

func (r *dataFileRepository) WriteData(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("data key is required")
	}
	file := models.DataFile{Key: key, Data: string(data)}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&file).Error; err != nil {
		return fmt.Errorf("writing data %s: %w", key, err)
	}
	return nil
}
