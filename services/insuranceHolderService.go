package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
)

type InsuranceHolderService struct {
	holders InsuranceHolderStore
}

func NewInsuranceHolderService(holders InsuranceHolderStore) *InsuranceHolderService {
	return &InsuranceHolderService{holders: holders}
}

func (s *InsuranceHolderService) Create(ctx context.Context, h *models.InsuranceHolder) (*models.InsuranceHolder, error) {
	if err := utils.ValidateInsuranceHolder(*h); err != nil {
		return nil, err
	}
	existing, err := s.holders.GetByCI(ctx, h.CI)
	if err != nil {
		return nil, fmt.Errorf("failed to check ci: %w", err)
	}
	if existing != nil {
		return nil, ErrCIAlreadyRegistered
	}
	h.ID = uuid.New().String()
	if err := s.holders.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create insurance holder: %w", err)
	}
	return h, nil
}

func (s *InsuranceHolderService) GetByID(ctx context.Context, id string) (*models.InsuranceHolder, error) {
	h, err := s.holders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance holder: %w", err)
	}
	if h == nil {
		return nil, ErrHolderNotFound
	}
	return h, nil
}

func (s *InsuranceHolderService) GetAll(ctx context.Context) ([]models.InsuranceHolder, error) {
	return s.holders.GetAll(ctx)
}

func (s *InsuranceHolderService) Update(ctx context.Context, id string, h *models.InsuranceHolder) (*models.InsuranceHolder, error) {
	stored, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	h.ID = stored.ID
	h.CreatedAt = stored.CreatedAt
	if err := utils.ValidateInsuranceHolder(*h); err != nil {
		return nil, err
	}
	if h.CI != stored.CI {
		existing, err := s.holders.GetByCI(ctx, h.CI)
		if err != nil {
			return nil, fmt.Errorf("failed to check ci: %w", err)
		}
		if existing != nil {
			return nil, ErrCIAlreadyRegistered
		}
	}
	if err := s.holders.Update(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to update insurance holder: %w", err)
	}
	return h, nil
}

// Delete refuses to remove a holder still referenced by cases.
func (s *InsuranceHolderService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.holders.Delete(ctx, id)
}

// CreateRelationship links a holder to a patient. The first active
// relationship of a patient always becomes primary; an explicit primary
// demotes the previous one. The store runs the whole write in one
// transaction.
func (s *InsuranceHolderService) CreateRelationship(ctx context.Context, rel *models.HolderPatientRelationship) (*models.HolderPatientRelationship, error) {
	if err := utils.ValidateRelationship(*rel); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, rel.HolderID); err != nil {
		return nil, err
	}
	rel.IsActive = true

	existing, err := s.holders.ListRelationships(ctx, rel.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	active := 0
	for _, r := range existing {
		if r.IsActive {
			active++
		}
	}
	if active == 0 {
		rel.IsPrimary = true
	}

	if err := s.holders.CreateRelationship(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to create relationship: %w", err)
	}
	return rel, nil
}

func (s *InsuranceHolderService) ListRelationships(ctx context.Context, patientID string) ([]models.HolderPatientRelationship, error) {
	rels, err := s.holders.ListRelationships(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	if rels == nil {
		rels = []models.HolderPatientRelationship{}
	}
	return rels, nil
}

// DeleteRelationship removes a link. When the primary one goes, the oldest
// remaining active relationship is promoted, or the patient's
// primary-holder reference is cleared if none remain.
func (s *InsuranceHolderService) DeleteRelationship(ctx context.Context, id uint) error {
	rel, err := s.holders.GetRelationship(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get relationship: %w", err)
	}
	if rel == nil {
		return ErrRelationshipNotFound
	}
	return s.holders.DeleteRelationship(ctx, id)
}
