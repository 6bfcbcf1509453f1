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
)

const BaremoCacheExpiry = 24 * time.Hour

// BaremoRepository stores rate tables. Reads are cache-heavy since baremos
// change rarely and every case create resolves one.
type BaremoRepository struct {
	cache *cache.Cache
}

func NewBaremoRepository(cache *cache.Cache) *BaremoRepository {
	return &BaremoRepository{cache: cache}
}

func (r *BaremoRepository) getBaremoCacheKey(id string) string {
	return "baremo:" + id
}

func (r *BaremoRepository) GetByID(ctx context.Context, id string) (*models.Baremo, error) {
	var b models.Baremo
	if hit, err := r.cache.GetJSON(ctx, r.getBaremoCacheKey(id), &b); err == nil && hit {
		return &b, nil
	}

	if err := database.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get baremo: %w", err)
	}

	if err := r.cache.SetJSON(ctx, r.getBaremoCacheKey(id), &b, BaremoCacheExpiry); err != nil {
		log.Printf("Failed to cache baremo %s: %v", id, err)
	}
	return &b, nil
}

func (r *BaremoRepository) GetAll(ctx context.Context) ([]models.Baremo, error) {
	var baremos []models.Baremo
	if hit, err := r.cache.GetJSON(ctx, "baremos_cache", &baremos); err == nil && hit {
		return baremos, nil
	}

	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&baremos).Error; err != nil {
		return nil, fmt.Errorf("failed to list baremos: %w", err)
	}

	if err := r.cache.SetJSON(ctx, "baremos_cache", baremos, BaremoCacheExpiry); err != nil {
		log.Printf("Failed to cache baremos: %v", err)
	}
	return baremos, nil
}

func (r *BaremoRepository) Create(ctx context.Context, b *models.Baremo) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("failed to create baremo: %w", err)
		}
		return r.cache.Delete(ctx, "baremos_cache")
	})
}

func (r *BaremoRepository) Update(ctx context.Context, b *models.Baremo) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(b).Error; err != nil {
			return fmt.Errorf("failed to update baremo: %w", err)
		}
		if err := r.cache.Delete(ctx, r.getBaremoCacheKey(b.ID)); err != nil {
			return fmt.Errorf("failed to delete baremo cache: %w", err)
		}
		return r.cache.Delete(ctx, "baremos_cache")
	})
}

func (r *BaremoRepository) Delete(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Baremo{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete baremo: %w", err)
		}
		if err := r.cache.Delete(ctx, r.getBaremoCacheKey(id)); err != nil {
			return fmt.Errorf("failed to delete baremo cache: %w", err)
		}
		return r.cache.Delete(ctx, "baremos_cache")
	})
}
