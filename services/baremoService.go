package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
)

type BaremoService struct {
	baremos BaremoStore
}

func NewBaremoService(baremos BaremoStore) *BaremoService {
	return &BaremoService{baremos: baremos}
}

func (s *BaremoService) Create(ctx context.Context, b *models.Baremo) (*models.Baremo, error) {
	if err := utils.ValidateBaremo(*b); err != nil {
		return nil, err
	}
	b.ID = uuid.New().String()
	if err := s.baremos.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create baremo: %w", err)
	}
	return b, nil
}

func (s *BaremoService) GetByID(ctx context.Context, id string) (*models.Baremo, error) {
	b, err := s.baremos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get baremo: %w", err)
	}
	if b == nil {
		return nil, ErrBaremoNotFound
	}
	return b, nil
}

func (s *BaremoService) GetAll(ctx context.Context) ([]models.Baremo, error) {
	return s.baremos.GetAll(ctx)
}

func (s *BaremoService) Update(ctx context.Context, id string, b *models.Baremo) (*models.Baremo, error) {
	stored, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.ID = stored.ID
	b.CreatedAt = stored.CreatedAt
	if err := utils.ValidateBaremo(*b); err != nil {
		return nil, err
	}
	if err := s.baremos.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update baremo: %w", err)
	}
	return b, nil
}

func (s *BaremoService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.baremos.Delete(ctx, id)
}
