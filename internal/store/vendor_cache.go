package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aura-finance/backend/internal/merchant"
	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VendorCacheStore implements VendorCache with gorm.
type VendorCacheStore struct {
	db *gorm.DB
}

func NewVendorCacheStore(db *gorm.DB) VendorCacheStore {
	return VendorCacheStore{db: db}
}

// Lookup returns the cache entry for the vendor. It does not count as a hit.
func (s VendorCacheStore) Lookup(ctx context.Context, userID uuid.UUID, vendorName string) (models.VendorCacheEntry, bool, error) {
	vendorName = merchant.Normalize(vendorName)
	if vendorName == "" {
		return models.VendorCacheEntry{}, false, nil
	}

	var entry models.VendorCacheEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND vendor_name = ?", userID, vendorName).
		First(&entry).Error

	if errors.Is(err, models.ErrResourceNotFound) {
		return models.VendorCacheEntry{}, false, nil
	}

	if err != nil {
		return models.VendorCacheEntry{}, false, err
	}

	return entry, true, nil
}

// Upsert maps the vendor to the category.
//
// An existing mapping is overwritten and its hit count reset to 1. Concurrent
// upserts for the same vendor do not fail, the last write wins.
func (s VendorCacheStore) Upsert(ctx context.Context, userID uuid.UUID, vendorName string, categoryID uuid.UUID) (models.VendorCacheEntry, error) {
	entry := models.VendorCacheEntry{
		UserID:     userID,
		VendorName: vendorName,
		CategoryID: categoryID,
		HitCount:   1,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "vendor_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"category_id", "hit_count", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return models.VendorCacheEntry{}, err
	}

	// On conflict, the stored row keeps its original ID
	var stored models.VendorCacheEntry
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND vendor_name = ?", userID, entry.VendorName).
		First(&stored).Error

	return stored, err
}

// RecordHit increments the hit count of the entry.
func (s VendorCacheStore) RecordHit(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).
		Model(&models.VendorCacheEntry{}).
		Where("id = ?", id).
		UpdateColumn("hit_count", gorm.Expr("hit_count + 1"))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound("vendor cache entry")
	}

	return nil
}

// List returns all entries of the user, most used first.
func (s VendorCacheStore) List(ctx context.Context, userID uuid.UUID) ([]models.VendorCacheEntry, error) {
	var entries []models.VendorCacheEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("hit_count DESC, vendor_name ASC").
		Find(&entries).Error

	return entries, err
}

func notFound(resource string) error {
	return fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, resource)
}
