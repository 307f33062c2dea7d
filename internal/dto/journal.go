package dto

import (
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

// ListJournalsParams defines query parameters for listing journals.
// StartAfter is the raw id of the last journal already held by the caller;
// NextToken is the opaque cursor returned by a previous page. StartAfter wins
// when both are set.
type ListJournalsParams struct {
	Limit      int    `form:"limit"`
	StartAfter string `form:"startAfter"`
	NextToken  string `form:"nextToken"`
}

// ListJournalsResponse is one page of journal summaries, newest date first.
type ListJournalsResponse struct {
	Journals  []domain.JournalSummary `json:"journals"`
	HasMore   bool                    `json:"hasMore"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID   string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetJournalResponse is a journal and its entries ordered oldest first.
type GetJournalResponse struct {
	Journal JournalResponse `json:"journal"`
	Entries []EntryResponse `json:"entries"`
}

// CreateJournalWithEntryResponse is returned when a day is started with its first entry.
type CreateJournalWithEntryResponse struct {
	Journal JournalResponse `json:"journal"`
	Entry   EntryResponse   `json:"entry"`
}

// SaveEntryRequest replaces an entry's content. Content may be the empty string.
type SaveEntryRequest struct {
	Content *string `json:"content" binding:"required"`
}

// SaveEntryResponse acknowledges a save.
type SaveEntryResponse struct {
	EntryID   string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{JournalID: j.JournalID, CreatedAt: j.CreatedAt}
}

func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:   e.EntryID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToGetJournalResponse converts a journal with its entries.
func ToGetJournalResponse(j *domain.JournalWithEntries) GetJournalResponse {
	return GetJournalResponse{
		Journal: ToJournalResponse(&j.Journal),
		Entries: ToEntryResponses(j.Entries),
	}
}

// ToDomainEntry turns a wire entry back into the domain shape used by clients.
func (e EntryResponse) ToDomainEntry(journalID string) domain.Entry {
	return domain.Entry{
		EntryID:   e.EntryID,
		JournalID: journalID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
