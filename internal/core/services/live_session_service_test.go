package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/services"
)

func TestNormalizeLiveModel(t *testing.T) {
	assert.Equal(t, services.DefaultLiveModel, services.NormalizeLiveModel(""))
	assert.Equal(t, "models/gemini-live", services.NormalizeLiveModel("gemini-live"))
	assert.Equal(t, "models/gemini-live", services.NormalizeLiveModel("models/gemini-live"))
}

func TestCreateLiveSession_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "k3y/+", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(1), body["uses"])
		assert.Equal(t, "2025-06-01T10:05:00Z", body["expireTime"])
		assert.Equal(t, "300s", body["newSessionExpireTime"])
		constraints := body["liveConnectConstraints"].(map[string]any)
		assert.Equal(t, "gemini-live", constraints["model"])
		assert.Equal(t, []any{"TEXT"}, constraints["config"].(map[string]any)["responseModalities"])

		_, _ = w.Write([]byte(`{"name":"auth_tokens/abc"}`))
	}))
	defer provider.Close()

	svc := services.NewLiveSessionService("k3y/+", "gemini-live",
		services.WithAuthTokensEndpoint(provider.URL),
		services.WithLiveClock(func() time.Time { return now }),
	)
	session, err := svc.CreateLiveSession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "auth_tokens/abc", session.Token)
	assert.Equal(t, "models/gemini-live", session.Model)
	assert.Equal(t, services.LiveWSEndpoint, session.WSEndpoint)
	assert.Equal(t, now.Add(5*time.Minute), session.ExpireTime)
}

func TestCreateLiveSession_UsesProviderExpiry(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"auth_tokens/xyz","expireTime":"2030-01-01T00:00:00Z"}`))
	}))
	defer provider.Close()

	session, err := services.NewLiveSessionService("key", "", services.WithAuthTokensEndpoint(provider.URL)).
		CreateLiveSession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), session.ExpireTime.UTC())
	assert.Equal(t, services.DefaultLiveModel, session.Model)
}

func TestCreateLiveSession_Errors(t *testing.T) {
	_, err := services.NewLiveSessionService("", "").CreateLiveSession(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
	assert.Equal(t, "Server missing GEMINI_API_KEY", err.(*apperrors.AppError).Message)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403}}`, http.StatusForbidden)
	}))
	defer failing.Close()
	_, err = services.NewLiveSessionService("key", "", services.WithAuthTokensEndpoint(failing.URL)).CreateLiveSession(context.Background())
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusCode(err))
	assert.Equal(t, "Could not create live session token", err.(*apperrors.AppError).Message)

	nameless := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer nameless.Close()
	_, err = services.NewLiveSessionService("key", "", services.WithAuthTokensEndpoint(nameless.URL)).CreateLiveSession(context.Background())
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusCode(err))
	assert.Equal(t, "Invalid token response from Gemini", err.(*apperrors.AppError).Message)
}
