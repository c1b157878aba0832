package services

import (
	"context"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	"github.com/mkarasev/currency_converter_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// ToggleUserActive flips the active flag of a user and returns the updated user.
	ToggleUserActive(ctx context.Context, userID string) (*domain.User, error)

	// ToggleUserAdmin flips the admin flag of a user and returns the updated user.
	ToggleUserAdmin(ctx context.Context, userID string) (*domain.User, error)

	// DeleteUser removes a user account.
	DeleteUser(ctx context.Context, userID string) error

	// EnsureAdminUser creates the named user as an admin if absent, or
	// promotes an existing user of that name. Idempotent; used at startup.
	EnsureAdminUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
