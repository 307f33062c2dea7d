package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
)

const (
	// DefaultAuthTokensEndpoint issues ephemeral tokens for the live API.
	DefaultAuthTokensEndpoint = "https://generativelanguage.googleapis.com/v1beta/authTokens"
	// LiveWSEndpoint is where clients open the live session with the token.
	LiveWSEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
	// DefaultLiveModel is used when no model is configured.
	DefaultLiveModel = "models/gemini-2.0-flash-live-001"

	liveTokenTTL      = 5 * time.Minute
	liveSessionWindow = "300s"
)

var (
	ErrLiveNotConfigured = apperrors.NewAppError(http.StatusInternalServerError, "Server missing GEMINI_API_KEY", apperrors.ErrNotConfigured)
	ErrLiveTokenFailed   = apperrors.NewBadGatewayError("Could not create live session token", nil)
	ErrLiveTokenInvalid  = apperrors.NewBadGatewayError("Invalid token response from Gemini", nil)
)

// NormalizeLiveModel ensures the model name carries the "models/" prefix.
func NormalizeLiveModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return DefaultLiveModel
	}
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

type liveSessionService struct {
	BaseService
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// LiveSessionOption configures a liveSessionService.
type LiveSessionOption func(*liveSessionService)

// WithAuthTokensEndpoint overrides the token endpoint.
func WithAuthTokensEndpoint(endpoint string) LiveSessionOption {
	return func(s *liveSessionService) { s.endpoint = endpoint }
}

// WithLiveHTTPClient sets the client used to reach the token endpoint.
func WithLiveHTTPClient(c *http.Client) LiveSessionOption {
	return func(s *liveSessionService) { s.httpClient = c }
}

// WithLiveClock overrides the clock used for token expiry.
func WithLiveClock(clock func() time.Time) LiveSessionOption {
	return func(s *liveSessionService) { s.clock = clock }
}

// NewLiveSessionService creates a LiveSessionSvc.
func NewLiveSessionService(apiKey, model string, opts ...LiveSessionOption) portssvc.LiveSessionSvc {
	s := &liveSessionService{
		apiKey:     apiKey,
		model:      NormalizeLiveModel(model),
		endpoint:   DefaultAuthTokensEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.LiveSessionSvc = (*liveSessionService)(nil)

type liveConnectConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type liveConnectConstraints struct {
	Model  string            `json:"model"`
	Config liveConnectConfig `json:"config"`
}

type authTokenRequest struct {
	Uses                   int                    `json:"uses"`
	ExpireTime             string                 `json:"expireTime"`
	NewSessionExpireTime   string                 `json:"newSessionExpireTime"`
	LiveConnectConstraints liveConnectConstraints `json:"liveConnectConstraints"`
}

type authTokenResponse struct {
	Name       string     `json:"name"`
	ExpireTime *time.Time `json:"expireTime"`
}

// CreateLiveSession asks the provider for a single-use token bound to the
// configured model with text-only responses.
func (s *liveSessionService) CreateLiveSession(ctx context.Context) (*domain.LiveSession, error) {
	if s.apiKey == "" {
		return nil, ErrLiveNotConfigured
	}

	expireAt := s.Now().Add(liveTokenTTL)
	payload := authTokenRequest{
		Uses:                 1,
		ExpireTime:           expireAt.Format(time.RFC3339Nano),
		NewSessionExpireTime: liveSessionWindow,
		LiveConnectConstraints: liveConnectConstraints{
			Model:  strings.TrimPrefix(s.model, "models/"),
			Config: liveConnectConfig{ResponseModalities: []string{"TEXT"}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	target := s.endpoint + "?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// The URL carries the key; log only the transport failure.
		s.GetLogger(ctx).Error("Live token request failed", slog.String("error", redactKey(err.Error(), s.apiKey)))
		return nil, ErrLiveTokenFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.GetLogger(ctx).Error("Failed to create live session token",
			slog.Int("status", resp.StatusCode),
			slog.String("details", string(details)))
		return nil, ErrLiveTokenFailed
	}

	var token authTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil || token.Name == "" {
		return nil, ErrLiveTokenInvalid
	}

	session := &domain.LiveSession{
		Token:      token.Name,
		Model:      s.model,
		WSEndpoint: LiveWSEndpoint,
		ExpireTime: expireAt,
	}
	if token.ExpireTime != nil {
		session.ExpireTime = *token.ExpireTime
	}
	s.LogInfo(ctx, "Live session token issued", slog.String("model", s.model))
	return session, nil
}

func redactKey(msg, key string) string {
	if key == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED")
	return strings.ReplaceAll(msg, key, "REDACTED")
}
