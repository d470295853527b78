package models

import (
	"github.com/aura-finance/backend/internal/merchant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorCacheEntry maps a normalized vendor name to a category for one user.
type VendorCacheEntry struct {
	DefaultModel
	UserID     uuid.UUID `gorm:"uniqueIndex:vendor_cache_user_vendor"`
	User       User      `json:"-"`
	VendorName string    `gorm:"uniqueIndex:vendor_cache_user_vendor"`
	CategoryID uuid.UUID
	Category   Category `json:"-"`
	HitCount   int
}

// BeforeSave normalizes the vendor name. No raw vendor name is ever
// written to the cache.
func (v *VendorCacheEntry) BeforeSave(_ *gorm.DB) error {
	v.VendorName = merchant.Normalize(v.VendorName)
	if v.VendorName == "" {
		return ErrVendorNameEmpty
	}

	return nil
}
