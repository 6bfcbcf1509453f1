package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
	"github.com/L1nkStart/cgm-system-v1-sub000/workflow"
)

// UserService manages operator accounts. Only Superusuario and
// Administrador may write.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) requireAdmin(session workflow.Session) error {
	if session.Role != models.RoleSuperusuario && session.Role != models.RoleAdministrador {
		return ErrAccessDenied
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, session workflow.Session, u *models.User) (*models.User, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	if err := utils.ValidateUserData(*u); err != nil {
		return nil, err
	}
	existing, err := s.users.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u.ID = uuid.New().String()
	u.Password = string(hashed)
	u.IsActive = true
	if !workflow.StateScopedRole(u.Role) {
		// Assigned states only mean something for the scoped roles.
		u.AssignedStates = nil
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetAll(ctx context.Context, session workflow.Session) ([]models.User, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	return s.users.GetAll(ctx)
}

func (s *UserService) Update(ctx context.Context, session workflow.Session, id string, u *models.User) (*models.User, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	stored, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.ID = stored.ID
	u.CreatedAt = stored.CreatedAt
	// Password changes go through the dedicated reset flow.
	u.Password = stored.Password
	if u.Email != stored.Email {
		existing, err := s.users.GetByEmail(ctx, u.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			return nil, ErrEmailAlreadyRegistered
		}
	}
	if !workflow.StateScopedRole(u.Role) {
		u.AssignedStates = nil
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// Delete refuses to remove a user still assigned to cases.
func (s *UserService) Delete(ctx context.Context, session workflow.Session, id string) error {
	if err := s.requireAdmin(session); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
