package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

// JournalReader defines read operations for journal data. Every method is scoped
// to a single user; another user's journals are indistinguishable from missing ones.
type JournalReader interface {
	// ListJournals returns at most limit visible journals ordered by id descending,
	// strictly after startAfter when it is non-empty.
	ListJournals(ctx context.Context, userID string, limit int, startAfter string) ([]domain.Journal, error)

	// FindJournal returns the journal for the date, hidden or not.
	FindJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error)

	// FindEntries returns a journal's entries ordered by creation time ascending.
	FindEntries(ctx context.Context, userID, journalID string) ([]domain.Entry, error)

	// LatestEntryCreatedAt returns the newest entry creation time in the journal,
	// and false when the journal has no entries.
	LatestEntryCreatedAt(ctx context.Context, userID, journalID string) (time.Time, bool, error)
}

// JournalWriter defines write operations for journal containers.
type JournalWriter interface {
	// EnsureJournal creates the journal if it does not exist and leaves it untouched otherwise.
	EnsureJournal(ctx context.Context, userID, journalID string, now time.Time) error

	// SetJournalHidden toggles the soft-delete flag.
	SetJournalHidden(ctx context.Context, userID, journalID string, hidden bool) error

	// CreateJournalWithEntry atomically creates the journal (if needed) and its first entry.
	CreateJournalWithEntry(ctx context.Context, userID string, entry domain.Entry) error
}

// EntryWriter defines write operations for entries.
type EntryWriter interface {
	// CreateEntry inserts a new entry, ensuring the parent journal exists.
	CreateEntry(ctx context.Context, userID string, entry domain.Entry) error

	// UpdateEntryContent replaces the content and returns the stored updatedAt,
	// which never moves backwards.
	UpdateEntryContent(ctx context.Context, userID, journalID, entryID, content string, now time.Time) (time.Time, error)

	// DeleteEntry removes the entry permanently.
	DeleteEntry(ctx context.Context, userID, journalID, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryWriter
}

// JournalRepositoryWithTx is a journal repository that also exposes transactions.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
