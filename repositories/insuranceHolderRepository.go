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

const HolderCacheExpiry = 24 * time.Hour

type InsuranceHolderRepository struct {
	cache *cache.Cache
}

func NewInsuranceHolderRepository(cache *cache.Cache) *InsuranceHolderRepository {
	return &InsuranceHolderRepository{cache: cache}
}

func (r *InsuranceHolderRepository) getHolderCacheKey(id string) string {
	return "insurance_holder:" + id
}

func (r *InsuranceHolderRepository) GetByID(ctx context.Context, id string) (*models.InsuranceHolder, error) {
	var h models.InsuranceHolder
	if hit, err := r.cache.GetJSON(ctx, r.getHolderCacheKey(id), &h); err == nil && hit {
		return &h, nil
	}

	if err := database.DB.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get insurance holder: %w", err)
	}

	if err := r.cache.SetJSON(ctx, r.getHolderCacheKey(id), &h, HolderCacheExpiry); err != nil {
		log.Printf("Failed to cache insurance holder %s: %v", id, err)
	}
	return &h, nil
}

func (r *InsuranceHolderRepository) GetByCI(ctx context.Context, ci string) (*models.InsuranceHolder, error) {
	var h models.InsuranceHolder
	if err := database.DB.WithContext(ctx).First(&h, "ci = ?", ci).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get insurance holder by ci: %w", err)
	}
	return &h, nil
}

func (r *InsuranceHolderRepository) GetAll(ctx context.Context) ([]models.InsuranceHolder, error) {
	var holders []models.InsuranceHolder
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&holders).Error; err != nil {
		return nil, fmt.Errorf("failed to list insurance holders: %w", err)
	}
	return holders, nil
}

func (r *InsuranceHolderRepository) Create(ctx context.Context, h *models.InsuranceHolder) error {
	if err := database.DB.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("failed to create insurance holder: %w", err)
	}
	return nil
}

func (r *InsuranceHolderRepository) Update(ctx context.Context, h *models.InsuranceHolder) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(h).Error; err != nil {
			return fmt.Errorf("failed to update insurance holder: %w", err)
		}
		return r.cache.Delete(ctx, r.getHolderCacheKey(h.ID))
	})
}

// Delete refuses to remove a holder still referenced by cases. The holder's
// relationships go with it.
func (r *InsuranceHolderRepository) Delete(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cases int64
		if err := tx.Model(&models.Case{}).Where("insurance_holder_id = ?", id).Count(&cases).Error; err != nil {
			return fmt.Errorf("failed to count holder cases: %w", err)
		}
		if cases > 0 {
			return services.ErrHolderHasCases
		}
		if err := tx.Where("holder_id = ?", id).Delete(&models.HolderPatientRelationship{}).Error; err != nil {
			return fmt.Errorf("failed to delete holder relationships: %w", err)
		}
		if err := tx.Delete(&models.InsuranceHolder{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete insurance holder: %w", err)
		}
		return r.cache.Delete(ctx, r.getHolderCacheKey(id))
	})
}

func (r *InsuranceHolderRepository) patientRelLockKey(patientID string) string {
	return "patient_rel_lock:" + patientID
}

// CreateRelationship inserts the link and keeps the patient's
// primary-holder pointer in step. An incoming primary demotes the previous
// one inside the same transaction.
func (r *InsuranceHolderRepository) CreateRelationship(ctx context.Context, rel *models.HolderPatientRelationship) error {
	return withLock(ctx, r.patientRelLockKey(rel.PatientID), func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if rel.IsPrimary {
				err := tx.Model(&models.HolderPatientRelationship{}).
					Where("patient_id = ? AND is_primary = ?", rel.PatientID, true).
					Update("is_primary", false).Error
				if err != nil {
					return fmt.Errorf("failed to demote previous primary: %w", err)
				}
			}
			if err := tx.Create(rel).Error; err != nil {
				return fmt.Errorf("failed to create relationship: %w", err)
			}
			if rel.IsPrimary {
				return r.setPatientPrimaryHolder(ctx, tx, rel.PatientID, rel.HolderID)
			}
			return nil
		})
	})
}

func (r *InsuranceHolderRepository) ListRelationships(ctx context.Context, patientID string) ([]models.HolderPatientRelationship, error) {
	var rels []models.HolderPatientRelationship
	err := database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	return rels, nil
}

func (r *InsuranceHolderRepository) GetRelationship(ctx context.Context, id uint) (*models.HolderPatientRelationship, error) {
	var rel models.HolderPatientRelationship
	if err := database.DB.WithContext(ctx).First(&rel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}
	return &rel, nil
}

// DeleteRelationship removes the link. When the primary one goes, the oldest
// remaining active relationship is promoted, or the patient's pointer is
// cleared if none remain.
func (r *InsuranceHolderRepository) DeleteRelationship(ctx context.Context, id uint) error {
	rel, err := r.GetRelationship(ctx, id)
	if err != nil {
		return err
	}
	if rel == nil {
		return services.ErrRelationshipNotFound
	}

	return withLock(ctx, r.patientRelLockKey(rel.PatientID), func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.HolderPatientRelationship{}, "id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete relationship: %w", err)
			}
			if !rel.IsPrimary {
				return nil
			}

			var remaining []models.HolderPatientRelationship
			if err := tx.Where("patient_id = ?", rel.PatientID).Find(&remaining).Error; err != nil {
				return fmt.Errorf("failed to list remaining relationships: %w", err)
			}
			next := models.NextPrimary(remaining)
			if next == nil {
				return r.setPatientPrimaryHolder(ctx, tx, rel.PatientID, "")
			}
			err := tx.Model(&models.HolderPatientRelationship{}).
				Where("id = ?", next.ID).
				Update("is_primary", true).Error
			if err != nil {
				return fmt.Errorf("failed to promote relationship: %w", err)
			}
			return r.setPatientPrimaryHolder(ctx, tx, rel.PatientID, next.HolderID)
		})
	})
}

func (r *InsuranceHolderRepository) setPatientPrimaryHolder(ctx context.Context, tx *gorm.DB, patientID, holderID string) error {
	err := tx.Model(&models.Patient{}).
		Where("id = ?", patientID).
		Update("primary_insurance_holder_id", holderID).Error
	if err != nil {
		return fmt.Errorf("failed to update patient primary holder: %w", err)
	}
	return r.cache.Delete(ctx, "patient:"+patientID)
}
