package repositories

import (
	"context"
	"encoding/json"
	"fmt"
)

// ReadCollection decodes the JSON array stored under key. A missing key
// yields an empty, non-nil slice.
func ReadCollection[T any](ctx context.Context, repo DataRepository, key string) ([]T, error) {
	data, err := repo.ReadData(ctx, key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// WriteCollection replaces the collection stored under key.
func WriteCollection[T any](ctx context.Context, repo DataRepository, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return repo.WriteData(ctx, key, data)
}
