package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeJournalCursor(t *testing.T) {
	token := EncodeJournalCursor("2025-03-14")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.NotContains(t, token, "2025-03-14", "Token should be opaque")

	journalID, err := DecodeJournalCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, "2025-03-14", journalID)
}

func TestDecodeJournalCursorError(t *testing.T) {
	_, err := DecodeJournalCursor("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2025-03-14"))
	_, err = DecodeJournalCursor(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	wrongPrefix := base64.RawURLEncoding.EncodeToString([]byte("quiz|2025-03-14"))
	_, err = DecodeJournalCursor(wrongPrefix)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.RawURLEncoding.EncodeToString([]byte("journal|notadate"))
	_, err = DecodeJournalCursor(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "journal date parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampLimit(0, 0))
	assert.Equal(t, 10, ClampLimit(-3, 10))
	assert.Equal(t, 5, ClampLimit(5, 20))
	assert.Equal(t, MaxPageSize, ClampLimit(MaxPageSize+1, 20))
}
