package models

import "time"

// StorageEntry is one key/value slot of the SQL storage backend.
type StorageEntry struct {
	Key       string    `gorm:"column:entry_key;type:text;primaryKey"`
	Value     string    `gorm:"column:entry_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
