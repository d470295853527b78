package store

import (
	"context"
	"errors"
	"strings"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStore implements Users with gorm.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return UserStore{db: db}
}

func (s UserStore) ByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, err
}

// ByInboundAddress returns the user owning any of the addresses.
// Addresses are compared case-insensitively.
func (s UserStore) ByInboundAddress(ctx context.Context, addresses ...string) (models.User, error) {
	normalized := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			normalized = append(normalized, a)
		}
	}

	if len(normalized) == 0 {
		return models.User{}, notFound("user")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("inbound_address IN ?", normalized).
		Order("created_at ASC").
		First(&user).Error

	return user, err
}

// Ensure returns the user with the email address of the passed user. If there
// is none, the user is created together with the default categories.
func (s UserStore) Ensure(ctx context.Context, user models.User) (models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(user.Email))).
		First(&existing).Error
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.User{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&user).Error
		if err != nil {
			return err
		}

		categories := models.DefaultCategories(user.ID)
		return tx.Create(&categories).Error
	})

	return user, err
}
