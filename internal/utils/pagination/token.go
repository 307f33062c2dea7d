package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const (
	journalCursorPrefix = "journal"
	journalIDLayout     = "2006-01-02"

	// DefaultPageSize is used when a caller does not ask for a specific limit.
	DefaultPageSize = 20
	// MaxPageSize caps a single page.
	MaxPageSize = 100
)

// EncodeJournalCursor creates an opaque token pointing after the given journal id.
func EncodeJournalCursor(journalID string) string {
	tokenStr := fmt.Sprintf("%s|%s", journalCursorPrefix, journalID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeJournalCursor parses a token produced by EncodeJournalCursor and
// returns the journal id it points after.
func DecodeJournalCursor(token string) (string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[0] != journalCursorPrefix {
		return "", fmt.Errorf("invalid pagination token format (split)")
	}
	if _, err := time.Parse(journalIDLayout, parts[1]); err != nil {
		return "", fmt.Errorf("invalid pagination token format (journal date parse): %w", err)
	}
	return parts[1], nil
}

// ClampLimit applies the default and maximum page size.
func ClampLimit(limit, defaultLimit int) int {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if limit <= 0 {
		return defaultLimit
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
