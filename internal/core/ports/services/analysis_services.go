package services

import (
	"context"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

// AnalysisGateway scores text for burnout risk.
type AnalysisGateway interface {
	// Analyze trims text, runs it through the analysis engine and derives a sentiment.
	// sessionToken is forwarded to the engine as a bearer credential.
	Analyze(ctx context.Context, text, sessionToken string) (*domain.AnalysisResult, error)
}

// LiveSessionSvc issues credentials for a live coaching session.
type LiveSessionSvc interface {
	CreateLiveSession(ctx context.Context) (*domain.LiveSession, error)
}

// MediaSvc hands out upload URLs for journal media.
type MediaSvc interface {
	CreateUploadURL(ctx context.Context, userID, filename, contentType string) (*domain.UploadTicket, error)
}
