package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	"github.com/SscSPs/burnout_journal/internal/models"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals and their entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func toDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID: m.JournalDate.Format(domain.JournalDateLayout),
		UserID:    m.UserID,
		Hidden:    m.Hidden,
		CreatedAt: m.CreatedAt,
	}
}

func toDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:   m.EntryID,
		JournalID: m.JournalDate.Format(domain.JournalDateLayout),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ListJournals returns visible journals newest first. startAfter is exclusive.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, userID string, limit int, startAfter string) ([]domain.Journal, error) {
	var cursor *string
	if startAfter != "" {
		cursor = &startAfter
	}
	query := `
		SELECT user_id, journal_date, hidden, created_at
		FROM journals
		WHERE user_id = $1
		  AND hidden = false
		  AND ($2::date IS NULL OR journal_date < $2::date)
		ORDER BY journal_date DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		var m models.Journal
		if err := rows.Scan(&m.UserID, &m.JournalDate, &m.Hidden, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, toDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

func (r *PgxJournalRepository) FindJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	query := `
		SELECT user_id, journal_date, hidden, created_at
		FROM journals
		WHERE user_id = $1 AND journal_date = $2::date;
	`
	var m models.Journal
	err := r.Pool.QueryRow(ctx, query, userID, journalID).Scan(&m.UserID, &m.JournalDate, &m.Hidden, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	j := toDomainJournal(m)
	return &j, nil
}

func (r *PgxJournalRepository) FindEntries(ctx context.Context, userID, journalID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, user_id, journal_date, content, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1 AND journal_date = $2::date
		ORDER BY created_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var m models.Entry
		if err := rows.Scan(&m.EntryID, &m.UserID, &m.JournalDate, &m.Content, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxJournalRepository) LatestEntryCreatedAt(ctx context.Context, userID, journalID string) (time.Time, bool, error) {
	query := `
		SELECT max(created_at)
		FROM journal_entries
		WHERE user_id = $1 AND journal_date = $2::date;
	`
	var latest *time.Time
	if err := r.Pool.QueryRow(ctx, query, userID, journalID).Scan(&latest); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read latest entry time: %w", err)
	}
	if latest == nil {
		return time.Time{}, false, nil
	}
	return *latest, true, nil
}

const ensureJournalQuery = `
	INSERT INTO journals (user_id, journal_date, hidden, created_at)
	VALUES ($1, $2::date, false, $3)
	ON CONFLICT (user_id, journal_date) DO NOTHING;
`

func (r *PgxJournalRepository) EnsureJournal(ctx context.Context, userID, journalID string, now time.Time) error {
	if _, err := r.Pool.Exec(ctx, ensureJournalQuery, userID, journalID, now); err != nil {
		return fmt.Errorf("failed to ensure journal %s: %w", journalID, err)
	}
	return nil
}

func (r *PgxJournalRepository) SetJournalHidden(ctx context.Context, userID, journalID string, hidden bool) error {
	query := `
		UPDATE journals SET hidden = $3
		WHERE user_id = $1 AND journal_date = $2::date;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, journalID, hidden)
	if err != nil {
		return fmt.Errorf("failed to update journal %s: %w", journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
	}
	return nil
}

const insertEntryQuery = `
	INSERT INTO journal_entries (entry_id, user_id, journal_date, content, created_at, updated_at)
	VALUES ($1, $2, $3::date, $4, $5, $6);
`

func insertEntry(ctx context.Context, tx pgx.Tx, userID string, entry domain.Entry) error {
	_, err := tx.Exec(ctx, insertEntryQuery,
		entry.EntryID,
		userID,
		entry.JournalID,
		entry.Content,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// CreateJournalWithEntry creates or revives the journal and inserts its first entry in one transaction.
func (r *PgxJournalRepository) CreateJournalWithEntry(ctx context.Context, userID string, entry domain.Entry) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO journals (user_id, journal_date, hidden, created_at)
			VALUES ($1, $2::date, false, $3)
			ON CONFLICT (user_id, journal_date) DO UPDATE SET hidden = false;
		`, userID, entry.JournalID, entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert journal %s: %w", entry.JournalID, err)
		}
		return insertEntry(ctx, tx, userID, entry)
	})
}

// CreateEntry inserts the entry, creating the parent journal when it is missing.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, userID string, entry domain.Entry) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, ensureJournalQuery, userID, entry.JournalID, entry.CreatedAt); err != nil {
			return fmt.Errorf("failed to ensure journal %s: %w", entry.JournalID, err)
		}
		return insertEntry(ctx, tx, userID, entry)
	})
}

// UpdateEntryContent stores new content. updated_at never moves backwards even
// when app server clocks disagree.
func (r *PgxJournalRepository) UpdateEntryContent(ctx context.Context, userID, journalID, entryID, content string, now time.Time) (time.Time, error) {
	query := `
		UPDATE journal_entries
		SET content = $4, updated_at = GREATEST(updated_at, $5)
		WHERE user_id = $1 AND journal_date = $2::date AND entry_id = $3
		RETURNING updated_at;
	`
	var updatedAt time.Time
	err := r.Pool.QueryRow(ctx, query, userID, journalID, entryID, content, now).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to update entry %s: %w", entryID, err)
	}
	return updatedAt, nil
}

func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, userID, journalID, entryID string) error {
	query := `
		DELETE FROM journal_entries
		WHERE user_id = $1 AND journal_date = $2::date AND entry_id = $3;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, journalID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	return nil
}
