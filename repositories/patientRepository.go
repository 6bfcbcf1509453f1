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

const PatientCacheExpiry = 24 * time.Hour

type PatientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) *PatientRepository {
	return &PatientRepository{cache: cache}
}

func (r *PatientRepository) getPatientCacheKey(id string) string {
	return "patient:" + id
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	if hit, err := r.cache.GetJSON(ctx, r.getPatientCacheKey(id), &p); err == nil && hit {
		return &p, nil
	}

	if err := database.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.cache.SetJSON(ctx, r.getPatientCacheKey(id), &p, PatientCacheExpiry); err != nil {
		log.Printf("Failed to cache patient %s: %v", id, err)
	}
	return &p, nil
}

func (r *PatientRepository) GetByCI(ctx context.Context, ci string) (*models.Patient, error) {
	var p models.Patient
	if err := database.DB.WithContext(ctx).First(&p, "ci = ?", ci).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by ci: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) Create(ctx context.Context, p *models.Patient) error {
	if err := database.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, p *models.Patient) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return fmt.Errorf("failed to update patient: %w", err)
		}
		return r.cache.Delete(ctx, r.getPatientCacheKey(p.ID))
	})
}

// Delete refuses to remove a patient that still has cases. Relationships go
// with the patient.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cases int64
		if err := tx.Model(&models.Case{}).Where("patient_id = ?", id).Count(&cases).Error; err != nil {
			return fmt.Errorf("failed to count patient cases: %w", err)
		}
		if cases > 0 {
			return services.ErrPatientHasCases
		}
		if err := tx.Where("patient_id = ?", id).Delete(&models.HolderPatientRelationship{}).Error; err != nil {
			return fmt.Errorf("failed to delete patient relationships: %w", err)
		}
		if err := tx.Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		return r.cache.Delete(ctx, r.getPatientCacheKey(id))
	})
}
