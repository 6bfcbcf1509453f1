package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
)

type PatientService struct {
	patients PatientStore
}

func NewPatientService(patients PatientStore) *PatientService {
	return &PatientService{patients: patients}
}

func (s *PatientService) Create(ctx context.Context, p *models.Patient) (*models.Patient, error) {
	if err := utils.ValidatePatient(*p); err != nil {
		return nil, err
	}
	existing, err := s.patients.GetByCI(ctx, p.CI)
	if err != nil {
		return nil, fmt.Errorf("failed to check ci: %w", err)
	}
	if existing != nil {
		return nil, ErrCIAlreadyRegistered
	}
	p.ID = uuid.New().String()
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return p, nil
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if p == nil {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.patients.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, id string, p *models.Patient) (*models.Patient, error) {
	stored, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ID = stored.ID
	p.CreatedAt = stored.CreatedAt
	// The primary-holder pointer is maintained by relationship writes, not
	// by patient edits.
	p.PrimaryInsuranceHolderID = stored.PrimaryInsuranceHolderID
	if err := utils.ValidatePatient(*p); err != nil {
		return nil, err
	}
	if p.CI != stored.CI {
		existing, err := s.patients.GetByCI(ctx, p.CI)
		if err != nil {
			return nil, fmt.Errorf("failed to check ci: %w", err)
		}
		if existing != nil {
			return nil, ErrCIAlreadyRegistered
		}
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return p, nil
}

// Delete refuses to remove a patient still referenced by cases.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}
