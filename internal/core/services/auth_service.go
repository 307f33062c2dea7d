package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/platform/config"
	"github.com/SscSPs/burnout_journal/internal/utils"
)

// UserLookup is the slice of the user service the token service needs to
// reject sessions of deleted accounts.
type UserLookup interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// tokenService issues and verifies JWT session tokens.
type tokenService struct {
	BaseService
	secret string
	issuer string
	expiry time.Duration
	users  UserLookup
}

// TokenServiceOption configures a tokenService.
type TokenServiceOption func(*tokenService)

// WithUserLookup makes ParseSessionToken fail for users that no longer exist.
func WithUserLookup(users UserLookup) TokenServiceOption {
	return func(s *tokenService) { s.users = users }
}

// WithTokenClock overrides the clock used for issued-at and expiry.
func WithTokenClock(clock func() time.Time) TokenServiceOption {
	return func(s *tokenService) { s.clock = clock }
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, opts ...TokenServiceOption) portssvc.TokenSvcFacade {
	s := &tokenService{
		secret: cfg.JWTSecret,
		issuer: cfg.JWTIssuer,
		expiry: cfg.JWTExpiryDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateSessionToken creates a new JWT session token for the given user.
func (s *tokenService) GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("cannot issue a session without a user")
	}
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to generate session token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, expiresAt, nil
}

// ParseSessionToken verifies the token and returns the user id it names.
// jwt errors are wrapped so callers can still tell an expired token apart.
func (s *tokenService) ParseSessionToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret, s.issuer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if s.users != nil {
		if _, err := s.users.GetUserByID(ctx, claims.Subject); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: session user no longer exists", apperrors.ErrUnauthorized)
			}
			return "", err
		}
	}
	return claims.Subject, nil
}

// IDTokenValidator checks a Google ID token for an audience. idtoken.Validate satisfies it.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// googleOAuthService verifies Google identities, either from an ID token the
// frontend already holds or by exchanging an authorization code.
type googleOAuthService struct {
	BaseService
	clientID     string
	validate     IDTokenValidator
	oauth2Config *oauth2.Config
}

// GoogleOAuthOption configures a googleOAuthService.
type GoogleOAuthOption func(*googleOAuthService)

// WithIDTokenValidator replaces the ID token validator.
func WithIDTokenValidator(v IDTokenValidator) GoogleOAuthOption {
	return func(s *googleOAuthService) { s.validate = v }
}

// WithOAuthEndpoint points code exchange at a different token endpoint.
func WithOAuthEndpoint(endpoint oauth2.Endpoint) GoogleOAuthOption {
	return func(s *googleOAuthService) { s.oauth2Config.Endpoint = endpoint }
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config, opts ...GoogleOAuthOption) portssvc.GoogleOAuthSvcFacade {
	s := &googleOAuthService{
		clientID: cfg.GoogleClientID,
		validate: idtoken.Validate,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

// ValidateGoogleIDToken validates an ID token received from Google and returns the identity in it.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleIdentity, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("%w: google client ID is not configured", apperrors.ErrNotConfigured)
	}

	payload, err := s.validate(ctx, idTokenString, s.clientID)
	if err != nil {
		s.GetLogger(ctx).Warn("Google ID token rejected", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Invalid Google credential", fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err))
	}
	return identityFromPayload(payload), nil
}

// ExchangeCode trades an authorization code for tokens and validates the returned ID token.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error) {
	if s.clientID == "" || s.oauth2Config.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google code exchange is not configured", apperrors.ErrNotConfigured)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.GetLogger(ctx).Warn("Google code exchange failed", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Invalid Google authorization code", fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err))
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperrors.NewBadGatewayError("Google did not return an ID token", nil)
	}
	return s.ValidateGoogleIDToken(ctx, rawIDToken)
}

func identityFromPayload(payload *idtoken.Payload) *domain.GoogleIdentity {
	identity := &domain.GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	switch v := payload.Claims["email_verified"].(type) {
	case bool:
		identity.EmailVerified = v
	case string:
		identity.EmailVerified = v == "true"
	}
	return identity
}
