package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/utils/pagination"
)

// MaxEntryContentLength bounds a single entry, in characters.
const MaxEntryContentLength = 100_000

var (
	ErrInvalidJournalDate = fmt.Errorf("%w: journal id must be a YYYY-MM-DD date", apperrors.ErrValidation)
	ErrInvalidEntryID     = fmt.Errorf("%w: entry id must be a UUID", apperrors.ErrValidation)
	ErrEntryTooLong       = fmt.Errorf("%w: entry content is too long", apperrors.ErrValidation)
	ErrInvalidCursor      = fmt.Errorf("%w: invalid pagination cursor", apperrors.ErrValidation)
)

// journalService owns the per-user journal store: dated journals and their entries.
type journalService struct {
	BaseService
	journalRepo     portsrepo.JournalRepositoryWithTx
	entryCooldown   time.Duration
	defaultPageSize int
}

// JournalServiceOption configures a journalService.
type JournalServiceOption func(*journalService)

// WithEntryCooldown sets the minimum gap between entry creations in one journal.
// Zero disables the check.
func WithEntryCooldown(d time.Duration) JournalServiceOption {
	return func(s *journalService) { s.entryCooldown = d }
}

// WithDefaultPageSize sets the page size used when a caller does not pass a limit.
func WithDefaultPageSize(n int) JournalServiceOption {
	return func(s *journalService) { s.defaultPageSize = n }
}

// WithJournalClock overrides the clock used for timestamps and the cool-down.
func WithJournalClock(clock func() time.Time) JournalServiceOption {
	return func(s *journalService) { s.clock = clock }
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, opts ...JournalServiceOption) portssvc.JournalSvcFacade {
	s := &journalService{
		journalRepo:     journalRepo,
		entryCooldown:   60 * time.Second,
		defaultPageSize: pagination.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func validateJournalID(journalID string) error {
	if !domain.IsValidJournalDate(journalID) {
		return ErrInvalidJournalDate
	}
	return nil
}

func validateEntryID(entryID string) error {
	if _, err := uuid.Parse(entryID); err != nil {
		return ErrInvalidEntryID
	}
	return nil
}

// ListJournals retrieves one page of the user's visible journals.
func (s *journalService) ListJournals(ctx context.Context, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := pagination.ClampLimit(params.Limit, s.defaultPageSize)

	startAfter := params.StartAfter
	if startAfter == "" && params.NextToken != "" {
		decoded, err := pagination.DecodeJournalCursor(params.NextToken)
		if err != nil {
			s.GetLogger(ctx).Warn("Rejected journal cursor", slog.String("error", err.Error()))
			return nil, ErrInvalidCursor
		}
		startAfter = decoded
	}
	if startAfter != "" {
		if err := validateJournalID(startAfter); err != nil {
			return nil, err
		}
	}

	// One extra row tells us whether another page exists.
	journals, err := s.journalRepo.ListJournals(ctx, userID, limit+1, startAfter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals from repository")
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	hasMore := len(journals) > limit
	if hasMore {
		journals = journals[:limit]
	}

	resp := &dto.ListJournalsResponse{
		Journals: make([]domain.JournalSummary, len(journals)),
		HasMore:  hasMore,
	}
	for i, j := range journals {
		resp.Journals[i] = j.Summary()
	}
	if hasMore {
		token := pagination.EncodeJournalCursor(journals[len(journals)-1].JournalID)
		resp.NextToken = &token
	}
	return resp, nil
}

// GetJournal returns a visible journal and its entries.
func (s *journalService) GetJournal(ctx context.Context, userID, journalID string) (*domain.JournalWithEntries, error) {
	if err := validateJournalID(journalID); err != nil {
		return nil, err
	}

	journal, err := s.findVisibleJournal(ctx, userID, journalID)
	if err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.FindEntries(ctx, userID, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return &domain.JournalWithEntries{Journal: *journal, Entries: entries}, nil
}

func (s *journalService) findVisibleJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournal(ctx, userID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Journal not found")
		}
		s.LogError(ctx, err, "Failed to load journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve journal: %w", err)
	}
	if journal.Hidden {
		return nil, apperrors.NewNotFoundError("Journal not found")
	}
	return journal, nil
}

// EnsureJournal creates the journal for the date if it is missing.
func (s *journalService) EnsureJournal(ctx context.Context, userID, journalID string) error {
	if err := validateJournalID(journalID); err != nil {
		return err
	}
	if err := s.journalRepo.EnsureJournal(ctx, userID, journalID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to ensure journal", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to ensure journal: %w", err)
	}
	return nil
}

// CreateJournalWithEntry starts a day: the journal and one empty entry, atomically.
func (s *journalService) CreateJournalWithEntry(ctx context.Context, userID, journalID string) (*domain.JournalWithEntries, error) {
	if err := validateJournalID(journalID); err != nil {
		return nil, err
	}
	if err := s.checkEntryCooldown(ctx, userID, journalID); err != nil {
		return nil, err
	}

	entry := s.newEntry(journalID)
	if err := s.journalRepo.CreateJournalWithEntry(ctx, userID, entry); err != nil {
		s.LogError(ctx, err, "Failed to create journal with entry", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	journal, err := s.journalRepo.FindJournal(ctx, userID, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload created journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve journal: %w", err)
	}

	s.LogInfo(ctx, "Journal started", slog.String("journal_id", journalID), slog.String("entry_id", entry.EntryID))
	return &domain.JournalWithEntries{Journal: *journal, Entries: []domain.Entry{entry}}, nil
}

// HideJournal soft-deletes a journal. Its entries are kept.
func (s *journalService) HideJournal(ctx context.Context, userID, journalID string) error {
	return s.setHidden(ctx, userID, journalID, true)
}

// UnhideJournal restores a hidden journal.
func (s *journalService) UnhideJournal(ctx context.Context, userID, journalID string) error {
	return s.setHidden(ctx, userID, journalID, false)
}

func (s *journalService) setHidden(ctx context.Context, userID, journalID string, hidden bool) error {
	if err := validateJournalID(journalID); err != nil {
		return err
	}
	if err := s.journalRepo.SetJournalHidden(ctx, userID, journalID, hidden); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Journal not found")
		}
		s.LogError(ctx, err, "Failed to change journal visibility", slog.String("journal_id", journalID), slog.Bool("hidden", hidden))
		return fmt.Errorf("failed to update journal: %w", err)
	}
	return nil
}

// CreateEntry appends an empty entry to the journal, creating the journal if needed.
func (s *journalService) CreateEntry(ctx context.Context, userID, journalID string) (*domain.Entry, error) {
	if err := validateJournalID(journalID); err != nil {
		return nil, err
	}
	if err := s.checkEntryCooldown(ctx, userID, journalID); err != nil {
		return nil, err
	}

	entry := s.newEntry(journalID)
	if err := s.journalRepo.CreateEntry(ctx, userID, entry); err != nil {
		s.LogError(ctx, err, "Failed to create entry", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return &entry, nil
}

// SaveEntry replaces an entry's content. Last write wins.
func (s *journalService) SaveEntry(ctx context.Context, userID, journalID, entryID, content string) (*dto.SaveEntryResponse, error) {
	if err := validateJournalID(journalID); err != nil {
		return nil, err
	}
	if err := validateEntryID(entryID); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(content) > MaxEntryContentLength {
		return nil, ErrEntryTooLong
	}

	updatedAt, err := s.journalRepo.UpdateEntryContent(ctx, userID, journalID, entryID, content, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Entry not found")
		}
		s.LogError(ctx, err, "Failed to save entry", slog.String("journal_id", journalID), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return &dto.SaveEntryResponse{EntryID: entryID, UpdatedAt: updatedAt}, nil
}

// DeleteEntry removes an entry permanently.
func (s *journalService) DeleteEntry(ctx context.Context, userID, journalID, entryID string) error {
	if err := validateJournalID(journalID); err != nil {
		return err
	}
	if err := validateEntryID(entryID); err != nil {
		return err
	}
	if err := s.journalRepo.DeleteEntry(ctx, userID, journalID, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Entry not found")
		}
		s.LogError(ctx, err, "Failed to delete entry", slog.String("journal_id", journalID), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// checkEntryCooldown rejects a creation that follows the newest entry too closely.
// Two concurrent creations can both pass; the limit is advisory.
func (s *journalService) checkEntryCooldown(ctx context.Context, userID, journalID string) error {
	if s.entryCooldown <= 0 {
		return nil
	}
	latest, ok, err := s.journalRepo.LatestEntryCreatedAt(ctx, userID, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read latest entry time", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to check entry cooldown: %w", err)
	}
	if !ok {
		return nil
	}
	if elapsed := s.Now().Sub(latest); elapsed < s.entryCooldown {
		wait := (s.entryCooldown - elapsed).Round(time.Second)
		s.GetLogger(ctx).Info("Entry creation throttled", slog.String("journal_id", journalID), slog.Duration("retry_after", wait))
		return apperrors.NewTooManyRequestsError(fmt.Sprintf("Please wait %s before adding another entry", wait))
	}
	return nil
}

func (s *journalService) newEntry(journalID string) domain.Entry {
	now := s.Now()
	return domain.Entry{
		EntryID:   uuid.NewString(),
		JournalID: journalID,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
