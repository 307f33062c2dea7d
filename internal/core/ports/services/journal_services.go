package services

import (
	"context"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/SscSPs/burnout_journal/internal/dto"
)

// JournalReaderSvc defines read operations for journals.
type JournalReaderSvc interface {
	// ListJournals returns one page of the user's visible journals, newest date first.
	ListJournals(ctx context.Context, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// GetJournal returns the journal and its entries. Hidden journals are not found.
	GetJournal(ctx context.Context, userID, journalID string) (*domain.JournalWithEntries, error)
}

// JournalWriterSvc defines write operations on journal containers.
type JournalWriterSvc interface {
	EnsureJournal(ctx context.Context, userID, journalID string) error
	CreateJournalWithEntry(ctx context.Context, userID, journalID string) (*domain.JournalWithEntries, error)
	HideJournal(ctx context.Context, userID, journalID string) error
	UnhideJournal(ctx context.Context, userID, journalID string) error
}

// EntryWriterSvc defines write operations on entries.
type EntryWriterSvc interface {
	// CreateEntry adds an empty entry, subject to the creation cool-down.
	CreateEntry(ctx context.Context, userID, journalID string) (*domain.Entry, error)

	// SaveEntry replaces the content of an entry.
	SaveEntry(ctx context.Context, userID, journalID, entryID, content string) (*dto.SaveEntryResponse, error)

	// DeleteEntry removes an entry permanently.
	DeleteEntry(ctx context.Context, userID, journalID, entryID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	EntryWriterSvc
}
