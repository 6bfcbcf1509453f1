package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
)

type ClientService struct {
	clients ClientStore
}

func NewClientService(clients ClientStore) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := utils.ValidateClient(*c); err != nil {
		return nil, err
	}
	existing, err := s.clients.GetByRIF(ctx, c.RIF)
	if err != nil {
		return nil, fmt.Errorf("failed to check rif: %w", err)
	}
	if existing != nil {
		return nil, ErrRIFAlreadyRegistered
	}
	c.ID = uuid.New().String()
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

func (s *ClientService) GetByID(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if c == nil {
		return nil, ErrClientNotFound
	}
	return c, nil
}

func (s *ClientService) GetAll(ctx context.Context) ([]models.Client, error) {
	return s.clients.GetAll(ctx)
}

func (s *ClientService) Update(ctx context.Context, id string, c *models.Client) (*models.Client, error) {
	stored, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ID = stored.ID
	c.CreatedAt = stored.CreatedAt
	if err := utils.ValidateClient(*c); err != nil {
		return nil, err
	}
	if c.RIF != stored.RIF {
		existing, err := s.clients.GetByRIF(ctx, c.RIF)
		if err != nil {
			return nil, fmt.Errorf("failed to check rif: %w", err)
		}
		if existing != nil {
			return nil, ErrRIFAlreadyRegistered
		}
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return c, nil
}

// Delete refuses to remove a client still referenced by cases.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}
