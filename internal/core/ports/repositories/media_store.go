package repositories

import (
	"context"
	"time"
)

// MediaStore issues time-limited write URLs for user media.
type MediaStore interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}
