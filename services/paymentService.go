package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
)

// PaymentService keeps Case.totalInvoiceAmount equal to the sum of the
// case's payment amounts: +amount on create, +delta on update, -amount on
// delete. The store applies each adjustment in the same transaction as the
// payment write.
type PaymentService struct {
	payments PaymentStore
}

func NewPaymentService(payments PaymentStore) *PaymentService {
	return &PaymentService{payments: payments}
}

func (s *PaymentService) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	if err := utils.ValidatePayment(*p); err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

func (s *PaymentService) ListByCase(ctx context.Context, caseID string) ([]models.Payment, error) {
	payments, err := s.payments.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// Update re-reads the stored amount inside the same logical operation so
// the case-total delta cannot be lost under concurrent edits.
func (s *PaymentService) Update(ctx context.Context, id string, upd *models.Payment) (*models.Payment, error) {
	upd.ID = id
	if err := utils.ValidatePayment(*upd); err != nil {
		return nil, err
	}

	stored, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if stored == nil {
		return nil, ErrPaymentNotFound
	}

	// The payment stays bound to its original case.
	upd.InvoiceID = stored.InvoiceID
	upd.CreatedAt = stored.CreatedAt
	delta := upd.Amount - stored.Amount

	if err := s.payments.Update(ctx, upd, delta); err != nil {
		return nil, err
	}
	return upd, nil
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	stored, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get payment: %w", err)
	}
	if stored == nil {
		return ErrPaymentNotFound
	}
	return s.payments.Delete(ctx, stored)
}
