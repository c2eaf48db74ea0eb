package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urbanexpress/storefront/pkg/db"
	"github.com/urbanexpress/storefront/pkg/db/models"
)

// SQL stores items as rows of the storage_entries table.
type SQL struct {
	client *db.Client
	now    func() time.Time
}

func NewSQL(client *db.Client) *SQL {
	return &SQL{client: client, now: time.Now}
}

func (s *SQL) GetItem(ctx context.Context, key string) (string, bool, error) {
	var entry models.StorageEntry
	err := s.client.DB().WithContext(ctx).
		Where("entry_key = ?", key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *SQL) SetItem(ctx context.Context, key, value string) error {
	entry := models.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *SQL) RemoveItem(ctx context.Context, key string) error {
	return s.client.DB().WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&models.StorageEntry{}).Error
}

func (s *SQL) Close() error {
	return s.client.Close()
}
