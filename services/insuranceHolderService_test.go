package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
)

type mockHolderStore struct {
	holders map[string]*models.InsuranceHolder
	rels    map[uint]*models.HolderPatientRelationship
	nextID  uint
}

func newMockHolderStore(holders ...*models.InsuranceHolder) *mockHolderStore {
	m := &mockHolderStore{
		holders: make(map[string]*models.InsuranceHolder),
		rels:    make(map[uint]*models.HolderPatientRelationship),
	}
	for _, h := range holders {
		m.holders[h.ID] = h
	}
	return m
}

func (m *mockHolderStore) GetByID(_ context.Context, id string) (*models.InsuranceHolder, error) {
	h, ok := m.holders[id]
	if !ok {
		return nil, nil
	}
	return h, nil
}

func (m *mockHolderStore) GetByCI(_ context.Context, ci string) (*models.InsuranceHolder, error) {
	for _, h := range m.holders {
		if h.CI == ci {
			return h, nil
		}
	}
	return nil, nil
}

func (m *mockHolderStore) GetAll(_ context.Context) ([]models.InsuranceHolder, error) {
	var out []models.InsuranceHolder
	for _, h := range m.holders {
		out = append(out, *h)
	}
	return out, nil
}

func (m *mockHolderStore) Create(_ context.Context, h *models.InsuranceHolder) error {
	m.holders[h.ID] = h
	return nil
}

func (m *mockHolderStore) Update(_ context.Context, h *models.InsuranceHolder) error {
	m.holders[h.ID] = h
	return nil
}

func (m *mockHolderStore) Delete(_ context.Context, id string) error {
	delete(m.holders, id)
	return nil
}

func (m *mockHolderStore) CreateRelationship(_ context.Context, rel *models.HolderPatientRelationship) error {
	m.nextID++
	rel.ID = m.nextID
	cp := *rel
	m.rels[rel.ID] = &cp
	return nil
}

func (m *mockHolderStore) ListRelationships(_ context.Context, patientID string) ([]models.HolderPatientRelationship, error) {
	var out []models.HolderPatientRelationship
	for _, r := range m.rels {
		if r.PatientID == patientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockHolderStore) GetRelationship(_ context.Context, id uint) (*models.HolderPatientRelationship, error) {
	r, ok := m.rels[id]
	if !ok {
		return nil, nil
	}
	return r, nil
}

func (m *mockHolderStore) DeleteRelationship(_ context.Context, id uint) error {
	delete(m.rels, id)
	return nil
}

func holderFixture(id, ci string) *models.InsuranceHolder {
	return &models.InsuranceHolder{ID: id, CI: ci, Name: "Titular " + id, IsActive: true}
}

func relFixture(holderID, patientID string) *models.HolderPatientRelationship {
	return &models.HolderPatientRelationship{
		HolderID:         holderID,
		PatientID:        patientID,
		RelationshipType: "Titular",
	}
}

func TestCreateHolderRejectsDuplicateCI(t *testing.T) {
	store := newMockHolderStore(holderFixture("h1", "V-1111"))
	svc := NewInsuranceHolderService(store)

	_, err := svc.Create(context.Background(), holderFixture("h2", "V-1111"))
	assert.ErrorIs(t, err, ErrCIAlreadyRegistered)

	created, err := svc.Create(context.Background(), holderFixture("", "V-2222"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestFirstRelationshipBecomesPrimary(t *testing.T) {
	store := newMockHolderStore(holderFixture("h1", "V-1111"), holderFixture("h2", "V-2222"))
	svc := NewInsuranceHolderService(store)

	first, err := svc.CreateRelationship(context.Background(), relFixture("h1", "p1"))
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)
	assert.True(t, first.IsActive)

	second, err := svc.CreateRelationship(context.Background(), relFixture("h2", "p1"))
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)
}

func TestCreateRelationshipRequiresExistingHolder(t *testing.T) {
	store := newMockHolderStore()
	svc := NewInsuranceHolderService(store)

	_, err := svc.CreateRelationship(context.Background(), relFixture("missing", "p1"))
	assert.ErrorIs(t, err, ErrHolderNotFound)
}

func TestDeleteRelationshipUnknownID(t *testing.T) {
	store := newMockHolderStore(holderFixture("h1", "V-1111"))
	svc := NewInsuranceHolderService(store)

	err := svc.DeleteRelationship(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRelationshipNotFound)
}
