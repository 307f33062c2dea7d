package services

import (
	"context"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/SscSPs/burnout_journal/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetProfile returns the user's preferences with defaults filled in.
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// SignUp creates a password account.
	SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.User, error)

	// UpsertGoogleUser returns the account linked to the identity, creating it on first sign-in.
	UpsertGoogleUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error)

	// UpdateProfile merges the request onto the stored profile.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.Profile, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
