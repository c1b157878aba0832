package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	portsrepo "github.com/mkarasev/currency_converter_app/internal/core/ports/repositories"
	"github.com/mkarasev/currency_converter_app/internal/dto"
	"github.com/mkarasev/currency_converter_app/internal/utils"
)

// UserService provides business logic for user accounts.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser registers a new user. The password is stored as a bcrypt hash.
// A username collision surfaces apperrors.ErrDuplicate.
func (s *UserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by identifier.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// ListUsers retrieves user accounts, newest first.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	return users, nil
}

// ToggleUserActive flips the active flag of a user account.
func (s *UserService) ToggleUserActive(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleUserAdmin flips the admin flag of a user account.
func (s *UserService) ToggleUserAdmin(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = !user.IsAdmin
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.DeleteUser(ctx, userID)
}

// EnsureAdminUser creates the named user as an admin if absent, or promotes
// an existing user of that name. Called once at startup; idempotent.
func (s *UserService) EnsureAdminUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up admin user: %w", err)
		}
		created, err := s.CreateUser(ctx, dto.RegisterRequest{Username: username, Password: password})
		if err != nil {
			return nil, fmt.Errorf("failed to create admin user: %w", err)
		}
		user = created
	}

	if !user.IsAdmin {
		user.IsAdmin = true
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to promote admin user: %w", err)
		}
	}
	return user, nil
}
