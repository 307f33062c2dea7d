package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
)

// UploadURLTTL is how long a presigned upload URL stays valid.
const UploadURLTTL = 5 * time.Minute

const maxUploadFilenameLength = 128

var ErrMediaNotConfigured = apperrors.NewAppError(http.StatusServiceUnavailable, "Media uploads are not configured", apperrors.ErrNotConfigured)

type mediaService struct {
	BaseService
	store portsrepo.MediaStore
}

// MediaServiceOption configures a mediaService.
type MediaServiceOption func(*mediaService)

// WithMediaClock overrides the clock used for object keys and expiry.
func WithMediaClock(clock func() time.Time) MediaServiceOption {
	return func(s *mediaService) { s.clock = clock }
}

// NewMediaService creates a MediaSvc. A nil store disables uploads.
func NewMediaService(store portsrepo.MediaStore, opts ...MediaServiceOption) portssvc.MediaSvc {
	s := &mediaService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.MediaSvc = (*mediaService)(nil)

// SanitizeFilename reduces a client filename to a safe object-key segment.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "upload"
	}
	if len(cleaned) > maxUploadFilenameLength {
		cleaned = cleaned[len(cleaned)-maxUploadFilenameLength:]
	}
	return cleaned
}

// CreateUploadURL presigns a PUT for uploads/<user>/<unix-millis>-<filename>.
func (s *mediaService) CreateUploadURL(ctx context.Context, userID, filename, contentType string) (*domain.UploadTicket, error) {
	if s.store == nil {
		return nil, ErrMediaNotConfigured
	}
	if strings.TrimSpace(filename) == "" {
		return nil, apperrors.NewBadRequestError("Filename is required")
	}

	now := s.Now()
	key := fmt.Sprintf("uploads/%s/%d-%s", userID, now.UnixMilli(), SanitizeFilename(filename))

	uploadURL, err := s.store.PresignPut(ctx, key, contentType, UploadURLTTL)
	if err != nil {
		s.LogError(ctx, err, "Failed to presign upload", slog.String("key", key))
		return nil, apperrors.NewBadGatewayError("Could not create upload URL", fmt.Errorf("%w: %w", apperrors.ErrUpstreamUnavailable, err))
	}

	return &domain.UploadTicket{
		UploadURL: uploadURL,
		FilePath:  key,
		Method:    http.MethodPut,
		ExpiresAt: now.Add(UploadURLTTL),
	}, nil
}
