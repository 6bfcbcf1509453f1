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

const ClientCacheExpiry = 24 * time.Hour

type ClientRepository struct {
	cache *cache.Cache
}

func NewClientRepository(cache *cache.Cache) *ClientRepository {
	return &ClientRepository{cache: cache}
}

func (r *ClientRepository) getClientCacheKey(id string) string {
	return "client:" + id
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	if hit, err := r.cache.GetJSON(ctx, r.getClientCacheKey(id), &c); err == nil && hit {
		return &c, nil
	}

	if err := database.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if err := r.cache.SetJSON(ctx, r.getClientCacheKey(id), &c, ClientCacheExpiry); err != nil {
		log.Printf("Failed to cache client %s: %v", id, err)
	}
	return &c, nil
}

func (r *ClientRepository) GetByRIF(ctx context.Context, rif string) (*models.Client, error) {
	var c models.Client
	if err := database.DB.WithContext(ctx).First(&c, "rif = ?", rif).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client by rif: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if hit, err := r.cache.GetJSON(ctx, "clients_cache", &clients); err == nil && hit {
		return clients, nil
	}

	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	if err := r.cache.SetJSON(ctx, "clients_cache", clients, ClientCacheExpiry); err != nil {
		log.Printf("Failed to cache clients: %v", err)
	}
	return clients, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		return r.cache.Delete(ctx, "clients_cache")
	})
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		if err := r.cache.Delete(ctx, r.getClientCacheKey(c.ID)); err != nil {
			return fmt.Errorf("failed to delete client cache: %w", err)
		}
		return r.cache.Delete(ctx, "clients_cache")
	})
}

// Delete refuses to remove a client that still has cases.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cases int64
		if err := tx.Model(&models.Case{}).Where("client_id = ?", id).Count(&cases).Error; err != nil {
			return fmt.Errorf("failed to count client cases: %w", err)
		}
		if cases > 0 {
			return services.ErrClientHasCases
		}
		if err := tx.Delete(&models.Client{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}
		if err := r.cache.Delete(ctx, r.getClientCacheKey(id)); err != nil {
			return fmt.Errorf("failed to delete client cache: %w", err)
		}
		return r.cache.Delete(ctx, "clients_cache")
	})
}
