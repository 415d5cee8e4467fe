package repositories

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"storyloom/internal/database"
)

type boltDataRepository struct {
	db *bbolt.DB
}

// NewBoltDataRepository stores data files in the bbolt data bucket. The
// bucket must exist (database.OpenBolt creates it).
func NewBoltDataRepository(db *bbolt.DB) DataRepository {
	return &boltDataRepository{db: db}
}

func (r *boltDataRepository) ReadData(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("data key is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(database.BoltBucketData))
		if bucket == nil {
			return fmt.Errorf("bucket %s missing", database.BoltBucketData)
		}
		// Values are only valid for the life of the transaction.
		if v := bucket.Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading data %s: %w", key, err)
	}
	return data, nil
}

func (r *boltDataRepository) WriteData(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("data key is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(database.BoltBucketData))
		if bucket == nil {
			return fmt.Errorf("bucket %s missing", database.BoltBucketData)
		}
		return bucket.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("writing data %s: %w", key, err)
	}
	return nil
}
