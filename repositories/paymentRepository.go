package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/L1nkStart/cgm-system-v1-sub000/cache"
	"github.com/L1nkStart/cgm-system-v1-sub000/database"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

// PaymentRepository writes payments and the owning case's running total in
// the same transaction, serialized per case through a redis lock.
type PaymentRepository struct {
	cache *cache.Cache
}

func NewPaymentRepository(cache *cache.Cache) *PaymentRepository {
	return &PaymentRepository{cache: cache}
}

func (r *PaymentRepository) caseTotalLockKey(caseID string) string {
	return "case_total_lock:" + caseID
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	if err := database.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) ListByCase(ctx context.Context, caseID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := database.DB.WithContext(ctx).
		Where("invoice_id = ?", caseID).
		Order("payment_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return withLock(ctx, r.caseTotalLockKey(p.InvoiceID), func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var owner models.Case
			if err := tx.Select("id").First(&owner, "id = ?", p.InvoiceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return services.ErrCaseNotFound
				}
				return fmt.Errorf("failed to resolve case: %w", err)
			}
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}
			return r.adjustCaseTotal(ctx, tx, p.InvoiceID, p.Amount)
		})
	})
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment, delta float64) error {
	return withLock(ctx, r.caseTotalLockKey(p.InvoiceID), func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(p).Error; err != nil {
				return fmt.Errorf("failed to update payment: %w", err)
			}
			return r.adjustCaseTotal(ctx, tx, p.InvoiceID, delta)
		})
	})
}

func (r *PaymentRepository) Delete(ctx context.Context, p *models.Payment) error {
	return withLock(ctx, r.caseTotalLockKey(p.InvoiceID), func() error {
		return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.Payment{}, "id = ?", p.ID).Error; err != nil {
				return fmt.Errorf("failed to delete payment: %w", err)
			}
			return r.adjustCaseTotal(ctx, tx, p.InvoiceID, -p.Amount)
		})
	})
}

// adjustCaseTotal shifts the case's accumulated amount and drops the stale
// cache entries.
func (r *PaymentRepository) adjustCaseTotal(ctx context.Context, tx *gorm.DB, caseID string, delta float64) error {
	if delta != 0 {
		err := tx.Model(&models.Case{}).
			Where("id = ?", caseID).
			Update("total_invoice_amount", gorm.Expr("total_invoice_amount + ?", delta)).Error
		if err != nil {
			return fmt.Errorf("failed to adjust case total: %w", err)
		}
	}
	if err := r.cache.Delete(ctx, "case:"+caseID); err != nil {
		return fmt.Errorf("failed to delete case cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "cases_page:*")
}
