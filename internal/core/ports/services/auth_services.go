package services

import (
	"context"
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

// TokenSvcFacade issues and verifies session tokens.
type TokenSvcFacade interface {
	// GenerateSessionToken creates a signed session token for the user and returns its expiry.
	GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ParseSessionToken verifies a session token and returns the user id it was issued to.
	ParseSessionToken(ctx context.Context, token string) (string, error)
}

// GoogleOAuthSvcFacade verifies Google identities.
type GoogleOAuthSvcFacade interface {
	// ValidateGoogleIDToken validates an ID token string from Google and returns the identity in it.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleIdentity, error)
	// ExchangeCode trades an authorization code for tokens and validates the returned ID token.
	ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error)
}
