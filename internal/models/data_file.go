package models

import "time"

// DataFile is one entry of the persisted key-value store. Data holds the
// JSON encoding of the collection stored under Key.
type DataFile struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Data      string    `gorm:"type:text" json:"data"`
	UpdatedAt time.Time `json:"updatedAt"`
}
