package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/L1nkStart/cgm-system-v1-sub000/cache"
	"github.com/L1nkStart/cgm-system-v1-sub000/database"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

const UserCacheExpiry = 12 * time.Hour

type UserRepository struct {
	cache *cache.Cache
}

func NewUserRepository(cache *cache.Cache) *UserRepository {
	return &UserRepository{cache: cache}
}

func (r *UserRepository) getUserCacheKey(id string) string {
	return "user:" + id
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if hit, err := r.cache.GetJSON(ctx, r.getUserCacheKey(id), &u); err == nil && hit {
		return &u, nil
	}

	if err := database.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.cache.SetJSON(ctx, r.getUserCacheKey(id), &u, UserCacheExpiry); err != nil {
		log.Printf("Failed to cache user %s: %v", id, err)
	}
	return &u, nil
}

// GetByEmail always reads the database; login must see the live password
// hash and active flag.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := database.DB.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := database.DB.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u).Error; err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return r.cache.Delete(ctx, r.getUserCacheKey(u.ID))
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("password", hashedPassword).Error
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return r.cache.Delete(ctx, r.getUserCacheKey(userID))
	})
}

// Delete refuses to remove a user still assigned to cases.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assigned int64
		if err := tx.Model(&models.Case{}).Where("assigned_analyst_id = ?", id).Count(&assigned).Error; err != nil {
			return fmt.Errorf("failed to count assigned cases: %w", err)
		}
		if assigned > 0 {
			return services.ErrUserHasCases
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return r.cache.Delete(ctx, r.getUserCacheKey(id))
	})
}
