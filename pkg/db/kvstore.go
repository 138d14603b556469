package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecomarket/storefront/pkg/kv"
)

// StorageRecord is one key's persisted value. Values are opaque JSON blobs
// written in full on every save, mirroring browser storage semantics.
type StorageRecord struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

func (StorageRecord) TableName() string {
	return "storage_records"
}

// KVStore implements kv.Store on top of the GORM connection.
type KVStore struct {
	client *Client
	now    func() time.Time
}

func NewKVStore(client *Client) *KVStore {
	return &KVStore{client: client, now: time.Now}
}

// AutoMigrate creates the storage table. Dev convenience; production
// deployments run cmd/migrate instead.
func (s *KVStore) AutoMigrate() error {
	return s.client.DB().AutoMigrate(&StorageRecord{})
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var record StorageRecord
	err := s.client.DB().WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if record.ExpiresAt != nil && record.ExpiresAt.Before(s.now()) {
		// Lazy expiry; the stale row is cleaned up on the way out.
		_ = s.client.DB().WithContext(ctx).Delete(&StorageRecord{}, "key = ?", key).Error
		return "", kv.ErrNotFound
	}
	return record.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	record := StorageRecord{Key: key, Value: value, UpdatedAt: s.now()}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		record.ExpiresAt = &expires
	}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&record).Error
}

func (s *KVStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.DB().WithContext(ctx).
		Delete(&StorageRecord{}, "key IN ?", keys).Error
}

// Ping verifies the backing connection.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
