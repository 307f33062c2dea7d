// Package local runs the client core directly against the journal service,
// bypassing HTTP. It serves operator tooling that already holds a database connection.
package local

import (
	"context"
	"errors"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/client/editor"
	"github.com/SscSPs/burnout_journal/internal/client/journalsync"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
)

var (
	_ journalsync.ListSource = (*JournalStore)(nil)
	_ editor.EntryStore      = (*JournalStore)(nil)
)

// JournalStore binds the journal service to one user.
type JournalStore struct {
	svc    portssvc.JournalSvcFacade
	userID string
}

func NewJournalStore(svc portssvc.JournalSvcFacade, userID string) *JournalStore {
	return &JournalStore{svc: svc, userID: userID}
}

func (s *JournalStore) ListJournals(ctx context.Context, pageSize int, startAfterID string) ([]domain.JournalSummary, error) {
	resp, err := s.svc.ListJournals(ctx, s.userID, dto.ListJournalsParams{Limit: pageSize, StartAfter: startAfterID})
	if err != nil {
		return nil, err
	}
	return resp.Journals, nil
}

// GetJournal returns nil without error when the journal is absent or hidden.
func (s *JournalStore) GetJournal(ctx context.Context, journalID string) (*domain.JournalWithEntries, error) {
	j, err := s.svc.GetJournal(ctx, s.userID, journalID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return j, err
}

func (s *JournalStore) EnsureJournal(ctx context.Context, journalID string) error {
	return s.svc.EnsureJournal(ctx, s.userID, journalID)
}

func (s *JournalStore) CreateJournalWithEntry(ctx context.Context, journalID string) (*domain.JournalWithEntries, error) {
	return s.svc.CreateJournalWithEntry(ctx, s.userID, journalID)
}

func (s *JournalStore) HideJournal(ctx context.Context, journalID string) error {
	return s.svc.HideJournal(ctx, s.userID, journalID)
}

func (s *JournalStore) UnhideJournal(ctx context.Context, journalID string) error {
	return s.svc.UnhideJournal(ctx, s.userID, journalID)
}

func (s *JournalStore) CreateEntry(ctx context.Context, journalID string) (*domain.Entry, error) {
	return s.svc.CreateEntry(ctx, s.userID, journalID)
}

func (s *JournalStore) SaveEntry(ctx context.Context, journalID, entryID, content string) error {
	_, err := s.svc.SaveEntry(ctx, s.userID, journalID, entryID, content)
	return err
}

func (s *JournalStore) DeleteEntry(ctx context.Context, journalID, entryID string) error {
	return s.svc.DeleteEntry(ctx, s.userID, journalID, entryID)
}
