package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
)

const engineAnalyzePath = "/api/v1/journals/analyze"

// noFeatureConfidence is reported when sentiment comes from the score alone.
const noFeatureConfidence = 0.6

var (
	ErrEmptyAnalysisText   = apperrors.NewBadRequestError("Text is required")
	ErrAnalysisUnavailable = apperrors.NewBadGatewayError("Analysis service unavailable", nil)
)

// analysisGateway forwards text to the analysis engine, or scores it locally
// when no engine is configured.
type analysisGateway struct {
	BaseService
	engineURL  string
	httpClient *http.Client
	lexicon    *Lexicon
}

// AnalysisOption configures an analysisGateway.
type AnalysisOption func(*analysisGateway)

// WithAnalysisHTTPClient sets the client used to reach the engine.
func WithAnalysisHTTPClient(c *http.Client) AnalysisOption {
	return func(g *analysisGateway) { g.httpClient = c }
}

// NewAnalysisGateway creates an AnalysisGateway. An empty engineURL selects the
// built-in lexicon analyzer.
func NewAnalysisGateway(engineURL string, timeout time.Duration, opts ...AnalysisOption) portssvc.AnalysisGateway {
	g := &analysisGateway{
		engineURL:  strings.TrimRight(engineURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		lexicon:    NewLexicon(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ portssvc.AnalysisGateway = (*analysisGateway)(nil)

func (g *analysisGateway) Analyze(ctx context.Context, text, sessionToken string) (*domain.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyAnalysisText
	}

	var analysis domain.BurnoutAnalysis
	if g.engineURL == "" {
		analysis = g.lexicon.Analyze(text)
	} else {
		remote, err := g.callEngine(ctx, text, sessionToken)
		if err != nil {
			return nil, err
		}
		analysis = *remote
	}

	return &domain.AnalysisResult{
		BurnoutAnalysis: analysis,
		Sentiment:       DeriveSentiment(analysis),
	}, nil
}

type engineRequest struct {
	Text string `json:"text"`
}

func (g *analysisGateway) callEngine(ctx context.Context, text, sessionToken string) (*domain.BurnoutAnalysis, error) {
	body, err := json.Marshal(engineRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.engineURL+engineAnalyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.LogError(ctx, err, "Analysis engine request failed")
		return nil, ErrAnalysisUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.GetLogger(ctx).Error("Analysis engine returned an error",
			slog.Int("status", resp.StatusCode),
			slog.String("details", string(details)))
		return nil, ErrAnalysisUnavailable
	}

	var analysis domain.BurnoutAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		g.LogError(ctx, err, "Analysis engine returned malformed JSON")
		return nil, ErrAnalysisUnavailable
	}
	return &analysis, nil
}

// DeriveSentiment picks the most frequent feature emotion. Ties go to
// negative, then neutral, then positive. With no features the overall score
// decides: 65 and above is negative, 35 and below positive.
func DeriveSentiment(a domain.BurnoutAnalysis) domain.Sentiment {
	if len(a.Features) > 0 {
		counts := map[domain.EmotionType]int{}
		for _, f := range a.Features {
			counts[f.EmotionType]++
		}
		label := domain.EmotionNegative
		for _, candidate := range []domain.EmotionType{domain.EmotionNeutral, domain.EmotionPositive} {
			if counts[candidate] > counts[label] {
				label = candidate
			}
		}
		confidence, _ := decimal.NewFromInt(int64(counts[label])).
			Div(decimal.NewFromInt(int64(len(a.Features)))).
			Round(2).
			Float64()
		return domain.Sentiment{Label: label, Confidence: confidence}
	}

	score := a.Score()
	switch {
	case score >= 65:
		return domain.Sentiment{Label: domain.EmotionNegative, Confidence: noFeatureConfidence}
	case score <= 35:
		return domain.Sentiment{Label: domain.EmotionPositive, Confidence: noFeatureConfidence}
	default:
		return domain.Sentiment{Label: domain.EmotionNeutral, Confidence: noFeatureConfidence}
	}
}
