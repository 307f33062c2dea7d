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
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/SscSPs/burnout_journal/internal/core/services"
)

func features(emotions ...domain.EmotionType) []domain.BurnoutFeature {
	out := make([]domain.BurnoutFeature, len(emotions))
	for i, e := range emotions {
		out[i] = domain.BurnoutFeature{EmotionType: e}
	}
	return out
}

func scorePtr(v float64) *float64 { return &v }

func TestDeriveSentiment(t *testing.T) {
	tests := []struct {
		name     string
		analysis domain.BurnoutAnalysis
		want     domain.Sentiment
	}{
		{
			name:     "majority negative",
			analysis: domain.BurnoutAnalysis{Features: features(domain.EmotionNegative, domain.EmotionNegative, domain.EmotionPositive)},
			want:     domain.Sentiment{Label: domain.EmotionNegative, Confidence: 0.67},
		},
		{
			name:     "tie prefers negative",
			analysis: domain.BurnoutAnalysis{Features: features(domain.EmotionPositive, domain.EmotionNegative)},
			want:     domain.Sentiment{Label: domain.EmotionNegative, Confidence: 0.5},
		},
		{
			name:     "tie prefers neutral over positive",
			analysis: domain.BurnoutAnalysis{Features: features(domain.EmotionPositive, domain.EmotionNeutral, domain.EmotionPositive, domain.EmotionNeutral)},
			want:     domain.Sentiment{Label: domain.EmotionNeutral, Confidence: 0.5},
		},
		{
			name:     "positive majority",
			analysis: domain.BurnoutAnalysis{Features: features(domain.EmotionPositive, domain.EmotionPositive, domain.EmotionNeutral)},
			want:     domain.Sentiment{Label: domain.EmotionPositive, Confidence: 0.67},
		},
		{
			name:     "no features high score",
			analysis: domain.BurnoutAnalysis{OverallScore: scorePtr(65)},
			want:     domain.Sentiment{Label: domain.EmotionNegative, Confidence: 0.6},
		},
		{
			name:     "no features low score",
			analysis: domain.BurnoutAnalysis{OverallScore: scorePtr(35)},
			want:     domain.Sentiment{Label: domain.EmotionPositive, Confidence: 0.6},
		},
		{
			name:     "no features missing score defaults to neutral",
			analysis: domain.BurnoutAnalysis{},
			want:     domain.Sentiment{Label: domain.EmotionNeutral, Confidence: 0.6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.DeriveSentiment(tt.analysis))
		})
	}
}

func TestAnalysisGateway_ForwardsToEngine(t *testing.T) {
	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/journals/analyze", r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "I am tired", body["text"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"overall_score":72.5,"risk_level":"high","features":[{"emotion_type":"negative"},{"emotion_type":"neutral"},{"emotion_type":"negative"}],"text_length":10,"sentence_count":1}`))
	}))
	defer engine.Close()

	gw := services.NewAnalysisGateway(engine.URL+"/", time.Second)
	result, err := gw.Analyze(context.Background(), "  I am tired \n", "session-token")

	require.NoError(t, err)
	assert.Equal(t, 72.5, result.Score())
	assert.Equal(t, "high", result.RiskLevel)
	assert.Equal(t, domain.Sentiment{Label: domain.EmotionNegative, Confidence: 0.67}, result.Sentiment)

	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"overall_score":72.5`)
	assert.Contains(t, string(encoded), `"sentiment":{"label":"negative","confidence":0.67}`)
}

func TestAnalysisGateway_EngineFailure(t *testing.T) {
	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer engine.Close()

	_, err := services.NewAnalysisGateway(engine.URL, time.Second).Analyze(context.Background(), "text", "tok")

	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusCode(err))
}

func TestAnalysisGateway_EmptyText(t *testing.T) {
	_, err := services.NewAnalysisGateway("http://unused", time.Second).Analyze(context.Background(), " \t\n", "tok")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Text is required", err.(*apperrors.AppError).Message)
}

func TestAnalysisGateway_LexiconFallback(t *testing.T) {
	result, err := services.NewAnalysisGateway("", time.Second).Analyze(context.Background(), "I am exhausted.", "")

	require.NoError(t, err)
	require.NotNil(t, result.OverallScore)
	assert.Equal(t, domain.RiskLevelFor(*result.OverallScore), result.RiskLevel)
	assert.Equal(t, 1, result.SentenceCount)
	assert.Equal(t, domain.Sentiment{Label: domain.EmotionNeutral, Confidence: 1}, result.Sentiment)
}
