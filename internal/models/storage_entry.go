// internal/models/storage_entry.go
package models

import "time"

// StorageEntry is one key of one client origin in the postgres storage backend.
type StorageEntry struct {
	Origin    string    `json:"origin" gorm:"primaryKey;size:128"`
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
