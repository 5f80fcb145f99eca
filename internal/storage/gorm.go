// internal/storage/gorm.go
package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hodu/storefront/internal/database"
	"github.com/hodu/storefront/internal/models"
)

// GormProvider stores origins as rows of storage_entries.
type GormProvider struct {
	db *gorm.DB
}

func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{db: db}
}

func (p *GormProvider) Open(origin string) Store {
	return &gormStore{db: p.db, origin: origin}
}

func (p *GormProvider) Close() error {
	return database.Close(p.db)
}

type gormStore struct {
	db     *gorm.DB
	origin string
}

func (s *gormStore) Get(ctx context.Context, key string) (string, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).
		Where("origin = ? AND key = ?", s.origin, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *gormStore) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.StorageEntry, 0, len(entries))
	for k, v := range entries {
		rows = append(rows, models.StorageEntry{Origin: s.origin, Key: k, Value: v})
	}

	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "origin"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

func (s *gormStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Where("origin = ? AND key IN ?", s.origin, keys).
			Delete(&models.StorageEntry{}).Error
	})
}
