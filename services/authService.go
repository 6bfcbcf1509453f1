package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
)

// AuthService resolves credentials into sessions and runs the
// password-reset flow (redis-stored code, mail delivery).
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login verifies the credentials and returns the account. Inactive
// accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SendResetCode generates a reset code, stores it in redis and mails it.
// An unknown email is reported as success so addresses cannot be enumerated.
func (s *AuthService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := utils.SendResetCodeEmail(email, code); err != nil {
		return fmt.Errorf("failed to send reset code email: %w", err)
	}
	return nil
}

// ChangePassword verifies the reset code and replaces the password.
func (s *AuthService) ChangePassword(ctx context.Context, email, resetCode, newPassword string) error {
	if err := utils.ValidatePasswordReset(resetCode, newPassword); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	stored, err := utils.GetResetCode(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to read reset code: %w", err)
	}
	if stored == nil || *stored != resetCode {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := utils.DeleteResetCode(ctx, email); err != nil {
		log.Printf("Failed to delete reset code for %s: %v", email, err)
	}
	return nil
}
