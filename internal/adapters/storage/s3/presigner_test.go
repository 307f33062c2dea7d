package s3_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/burnout_journal/internal/adapters/storage/s3"
)

func TestPresignPut_PathStyleEndpoint(t *testing.T) {
	p, err := s3.NewPresigner(context.Background(), s3.Config{
		Region:       "us-east-1",
		Bucket:       "journal-media",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	require.NoError(t, err)

	raw, err := p.PresignPut(context.Background(), "uploads/u1/1-cat.jpg", "image/jpeg", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/journal-media/uploads/u1/1-cat.jpg", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "content-type")
}

func TestNewPresigner_RequiresBucket(t *testing.T) {
	_, err := s3.NewPresigner(context.Background(), s3.Config{Region: "us-east-1"})
	assert.Error(t, err)
}
