package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/L1nkStart/cgm-system-v1-sub000/cache"
	"github.com/L1nkStart/cgm-system-v1-sub000/database"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

const (
	CaseCacheExpiry     = 1 * time.Hour
	CaseListCacheExpiry = 5 * time.Minute
)

// caseViewSelect projects a case row plus the display names of its related
// records. The aliases match the CaseView columns.
const caseViewSelect = `cases.*,
	analysts.name AS analyst_name,
	patients.name AS patient_name,
	patients.ci AS patient_ci,
	patients.phone AS patient_phone,
	holders.name AS holder_name,
	clients.name AS client_name,
	baremos.name AS baremo_name`

type CaseRepository struct {
	cache *cache.Cache
}

func NewCaseRepository(cache *cache.Cache) *CaseRepository {
	return &CaseRepository{cache: cache}
}

func (r *CaseRepository) getCaseCacheKey(id string) string {
	return "case:" + id
}

func (r *CaseRepository) viewQuery(ctx context.Context) *gorm.DB {
	return database.DB.WithContext(ctx).
		Table("cases").
		Select(caseViewSelect).
		Joins("LEFT JOIN users AS analysts ON analysts.id = cases.assigned_analyst_id").
		Joins("LEFT JOIN patients ON patients.id = cases.patient_id").
		Joins("LEFT JOIN insurance_holders AS holders ON holders.id = cases.insurance_holder_id").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Joins("LEFT JOIN baremos ON baremos.id = cases.baremo_id")
}

// casePage is the cached shape of one listing page.
type casePage struct {
	Views []models.CaseView `json:"views"`
	Total int64             `json:"total"`
}

func (r *CaseRepository) getPageCacheKey(f services.CaseFilters) string {
	return fmt.Sprintf("cases_page:%s|%s|%s|%d|%d",
		f.AnalystID, strings.Join(f.Statuses, ","), strings.Join(f.States, ","), f.Page, f.Limit)
}

// List returns one page of joined case views plus the total filtered count,
// newest case date first. Pages are cached briefly and dropped on any case
// write.
func (r *CaseRepository) List(ctx context.Context, f services.CaseFilters) ([]models.CaseView, int64, error) {
	pageKey := r.getPageCacheKey(f)
	var cached casePage
	if hit, err := r.cache.GetJSON(ctx, pageKey, &cached); err == nil && hit {
		return cached.Views, cached.Total, nil
	}

	query := r.viewQuery(ctx)
	if f.AnalystID != "" {
		query = query.Where("cases.assigned_analyst_id = ?", f.AnalystID)
	}
	if len(f.Statuses) > 0 {
		query = query.Where("cases.status IN ?", f.Statuses)
	}
	if len(f.States) > 0 {
		query = query.Where("cases.state IN ?", f.States)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cases: %w", err)
	}

	var views []models.CaseView
	err := query.
		Order("cases.date DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Scan(&views).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cases: %w", err)
	}

	if err := r.cache.SetJSON(ctx, pageKey, casePage{Views: views, Total: total}, CaseListCacheExpiry); err != nil {
		log.Printf("Failed to cache case page %s: %v", pageKey, err)
	}
	return views, total, nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	if hit, err := r.cache.GetJSON(ctx, r.getCaseCacheKey(id), &c); err == nil && hit {
		return &c, nil
	}

	if err := database.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	if err := r.cache.SetJSON(ctx, r.getCaseCacheKey(id), &c, CaseCacheExpiry); err != nil {
		log.Printf("Failed to cache case %s: %v", id, err)
	}
	return &c, nil
}

func (r *CaseRepository) GetView(ctx context.Context, id string) (*models.CaseView, error) {
	var view models.CaseView
	err := r.viewQuery(ctx).Where("cases.id = ?", id).Take(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get case view: %w", err)
	}
	return &view, nil
}

func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	lockKey := "case_lock:" + c.ID
	return withLock(ctx, lockKey, func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(c).Error; err != nil {
				return fmt.Errorf("failed to create case: %w", err)
			}
			return r.cache.DeleteAll(ctx, "cases_page:*")
		})
	})
}

// Save writes the full case row; jsonb list columns are replaced whole.
func (r *CaseRepository) Save(ctx context.Context, c *models.Case) error {
	lockKey := "case_lock:" + c.ID
	return withLock(ctx, lockKey, func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(c).Error; err != nil {
				return fmt.Errorf("failed to save case: %w", err)
			}
			if err := r.cache.Delete(ctx, r.getCaseCacheKey(c.ID)); err != nil {
				return fmt.Errorf("failed to delete case cache: %w", err)
			}
			return r.cache.DeleteAll(ctx, "cases_page:*")
		})
	})
}

// Delete removes the case and its audit trail. Cases with registered
// payments are guarded.
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	lockKey := "case_lock:" + id
	return withLock(ctx, lockKey, func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var payments int64
			if err := tx.Model(&models.Payment{}).Where("invoice_id = ?", id).Count(&payments).Error; err != nil {
				return fmt.Errorf("failed to count case payments: %w", err)
			}
			if payments > 0 {
				return services.ErrCaseHasPayments
			}
			if err := tx.Where("case_id = ?", id).Delete(&models.AuditLog{}).Error; err != nil {
				return fmt.Errorf("failed to delete case history: %w", err)
			}
			if err := tx.Delete(&models.Case{}, "id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete case: %w", err)
			}
			if err := r.cache.Delete(ctx, r.getCaseCacheKey(id)); err != nil {
				return fmt.Errorf("failed to delete case cache: %w", err)
			}
			return r.cache.DeleteAll(ctx, "cases_page:*")
		})
	})
}

func (r *CaseRepository) History(ctx context.Context, caseID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := database.DB.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load case history: %w", err)
	}
	return entries, nil
}

func (r *CaseRepository) AppendAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if err := database.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}
