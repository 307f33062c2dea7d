package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/SscSPs/burnout_journal/internal/core/services"
	"github.com/SscSPs/burnout_journal/internal/platform/config"
)

type stubUserLookup struct {
	users map[string]*domain.User
}

func (s stubUserLookup) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFoundError("User not found")
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTIssuer:          "burnout-journal-test",
		JWTExpiryDuration:  time.Hour,
		GoogleClientID:     "client-id.apps.googleusercontent.com",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:3000/auth/callback",
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := services.NewTokenService(testAuthConfig())
	user := &domain.User{UserID: "user-123"}

	token, expiresAt, err := svc.GenerateSessionToken(context.Background(), user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := svc.ParseSessionToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenService_Expired(t *testing.T) {
	past := time.Now().Add(-3 * time.Hour)
	issuer := services.NewTokenService(testAuthConfig(), services.WithTokenClock(func() time.Time { return past }))
	token, _, err := issuer.GenerateSessionToken(context.Background(), &domain.User{UserID: "u1"})
	require.NoError(t, err)

	_, err = services.NewTokenService(testAuthConfig()).ParseSessionToken(context.Background(), token)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_WrongSecretOrIssuer(t *testing.T) {
	token, _, err := services.NewTokenService(testAuthConfig()).GenerateSessionToken(context.Background(), &domain.User{UserID: "u1"})
	require.NoError(t, err)

	otherSecret := testAuthConfig()
	otherSecret.JWTSecret = "another-secret"
	_, err = services.NewTokenService(otherSecret).ParseSessionToken(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	otherIssuer := testAuthConfig()
	otherIssuer.JWTIssuer = "someone-else"
	_, err = services.NewTokenService(otherIssuer).ParseSessionToken(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_DeletedUser(t *testing.T) {
	lookup := stubUserLookup{users: map[string]*domain.User{"alive": {UserID: "alive"}}}
	svc := services.NewTokenService(testAuthConfig(), services.WithUserLookup(lookup))

	aliveToken, _, err := svc.GenerateSessionToken(context.Background(), &domain.User{UserID: "alive"})
	require.NoError(t, err)
	goneToken, _, err := svc.GenerateSessionToken(context.Background(), &domain.User{UserID: "gone"})
	require.NoError(t, err)

	_, err = svc.ParseSessionToken(context.Background(), aliveToken)
	assert.NoError(t, err)
	_, err = svc.ParseSessionToken(context.Background(), goneToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func fakeValidator(t *testing.T, wantToken string) services.IDTokenValidator {
	return func(_ context.Context, idToken, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "client-id.apps.googleusercontent.com", audience)
		if idToken != wantToken {
			return nil, errors.New("idtoken: invalid token")
		}
		return &idtoken.Payload{
			Subject: "google-sub",
			Claims: map[string]interface{}{
				"email":          "ada@example.com",
				"name":           "Ada",
				"email_verified": true,
			},
		}, nil
	}
}

func TestGoogleOAuth_ValidateIDToken(t *testing.T) {
	svc := services.NewGoogleOAuthService(testAuthConfig(), services.WithIDTokenValidator(fakeValidator(t, "good")))

	identity, err := svc.ValidateGoogleIDToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, domain.GoogleIdentity{Subject: "google-sub", Email: "ada@example.com", Name: "Ada", EmailVerified: true}, *identity)

	_, err = svc.ValidateGoogleIDToken(context.Background(), "bad")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))
}

func TestGoogleOAuth_NotConfigured(t *testing.T) {
	cfg := testAuthConfig()
	cfg.GoogleClientID = ""
	svc := services.NewGoogleOAuthService(cfg)

	_, err := svc.ValidateGoogleIDToken(context.Background(), "anything")
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)

	_, err = svc.ExchangeCode(context.Background(), "code")
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestGoogleOAuth_ExchangeCode(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "auth-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"good"}`))
	}))
	defer tokenServer.Close()

	svc := services.NewGoogleOAuthService(testAuthConfig(),
		services.WithIDTokenValidator(fakeValidator(t, "good")),
		services.WithOAuthEndpoint(oauth2.Endpoint{TokenURL: tokenServer.URL, AuthStyle: oauth2.AuthStyleInParams}),
	)

	identity, err := svc.ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "google-sub", identity.Subject)

	_, err = svc.ExchangeCode(context.Background(), "stale-code")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
