package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
)

type mockPaymentStore struct {
	payments map[string]*models.Payment
	totals   map[string]float64
}

func newMockPaymentStore(caseIDs ...string) *mockPaymentStore {
	m := &mockPaymentStore{
		payments: make(map[string]*models.Payment),
		totals:   make(map[string]float64),
	}
	for _, id := range caseIDs {
		m.totals[id] = 0
	}
	return m
}

func (m *mockPaymentStore) GetByID(_ context.Context, id string) (*models.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPaymentStore) ListByCase(_ context.Context, caseID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range m.payments {
		if p.InvoiceID == caseID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPaymentStore) Create(_ context.Context, p *models.Payment) error {
	if _, ok := m.totals[p.InvoiceID]; !ok {
		return ErrCaseNotFound
	}
	cp := *p
	m.payments[p.ID] = &cp
	m.totals[p.InvoiceID] += p.Amount
	return nil
}

func (m *mockPaymentStore) Update(_ context.Context, p *models.Payment, delta float64) error {
	cp := *p
	m.payments[p.ID] = &cp
	m.totals[p.InvoiceID] += delta
	return nil
}

func (m *mockPaymentStore) Delete(_ context.Context, p *models.Payment) error {
	delete(m.payments, p.ID)
	m.totals[p.InvoiceID] -= p.Amount
	return nil
}

func newPayment(caseID string, amount float64) *models.Payment {
	return &models.Payment{
		InvoiceID:   caseID,
		Amount:      amount,
		PaymentDate: time.Now(),
		Status:      "Confirmado",
	}
}

func TestPaymentLifecycleKeepsCaseTotalInStep(t *testing.T) {
	store := newMockPaymentStore("case-1")
	svc := NewPaymentService(store)

	created, err := svc.Create(context.Background(), newPayment("case-1", 100))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, float64(100), store.totals["case-1"])

	upd := newPayment("case-1", 150)
	updated, err := svc.Update(context.Background(), created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, float64(150), updated.Amount)
	assert.Equal(t, float64(150), store.totals["case-1"])

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Equal(t, float64(0), store.totals["case-1"])
}

func TestPaymentCreateRejectsMissingCase(t *testing.T) {
	store := newMockPaymentStore("case-1")
	svc := NewPaymentService(store)

	_, err := svc.Create(context.Background(), newPayment("no-such-case", 50))
	assert.ErrorIs(t, err, ErrCaseNotFound)
	assert.Empty(t, store.payments)
}

func TestPaymentRejectsNonPositiveAmount(t *testing.T) {
	store := newMockPaymentStore("case-1")
	svc := NewPaymentService(store)

	_, err := svc.Create(context.Background(), newPayment("case-1", 0))
	assert.Error(t, err)
	assert.Equal(t, float64(0), store.totals["case-1"])
}

func TestPaymentUpdateKeepsCaseBinding(t *testing.T) {
	store := newMockPaymentStore("case-1", "case-2")
	svc := NewPaymentService(store)

	created, err := svc.Create(context.Background(), newPayment("case-1", 80))
	require.NoError(t, err)

	// An update naming another case is ignored; the binding is immutable.
	upd := newPayment("case-2", 80)
	updated, err := svc.Update(context.Background(), created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "case-1", updated.InvoiceID)
	assert.Equal(t, float64(80), store.totals["case-1"])
	assert.Equal(t, float64(0), store.totals["case-2"])
}

func TestPaymentDeleteUnknownID(t *testing.T) {
	store := newMockPaymentStore("case-1")
	svc := NewPaymentService(store)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
