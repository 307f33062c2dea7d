package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // profile timezones must resolve on hosts without zoneinfo

	"github.com/google/uuid"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/utils"
)

// ErrInvalidCredentials is returned for any failed password sign-in, whatever the cause.
var ErrInvalidCredentials = apperrors.NewUnauthorizedError("Invalid email or password")

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// UserServiceOption configures a userService.
type UserServiceOption func(*userService)

// WithUserClock overrides the clock used for audit timestamps.
func WithUserClock(clock func() time.Time) UserServiceOption {
	return func(s *userService) { s.clock = clock }
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, opts ...UserServiceOption) portssvc.UserSvcFacade {
	s := &userService{userRepo: userRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile.WithDefaults()
	return &profile, nil
}

// SignUp creates a password account. Emails are unique regardless of case.
func (s *userService) SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, apperrors.NewBadRequestError("Email is required")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, apperrors.NewBadRequestError("Password is too long")
		}
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := domain.DefaultProfile()
	profile.DisplayName = strings.TrimSpace(req.DisplayName)

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		Profile:      profile,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User signed up", slog.String("user_id", user.UserID))
	return &user, nil
}

// UpsertGoogleUser links the Google identity to an account. A first sign-in
// creates the account; an existing password account with the same verified
// email is not taken over.
func (s *userService) UpsertGoogleUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error) {
	if identity.Subject == "" {
		return nil, apperrors.NewUnauthorizedError("Google identity has no subject")
	}

	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.ProviderGoogle, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up google user")
		return nil, fmt.Errorf("failed to find user by provider: %w", err)
	}

	if !identity.EmailVerified {
		return nil, apperrors.NewUnauthorizedError("Google email is not verified")
	}

	profile := domain.DefaultProfile()
	profile.DisplayName = identity.Name

	now := s.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Email:          normalizeEmail(identity.Email),
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: identity.Subject,
		Profile:        profile,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		s.LogError(ctx, err, "Failed to save google user")
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created from google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := req.Apply(user.Profile.WithDefaults())
	profile.DisplayName = strings.TrimSpace(profile.DisplayName)
	if _, err := time.LoadLocation(profile.Timezone); err != nil {
		return nil, apperrors.NewBadRequestError("Unknown timezone")
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, profile, s.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to update profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser checks a password sign-in. Unknown emails, Google-only
// accounts and wrong passwords all yield ErrInvalidCredentials.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.GetLogger(ctx).Warn("Password check failed", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
