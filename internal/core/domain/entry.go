package domain

import "time"

// Entry is one free-text note inside a journal. Content may be empty.
type Entry struct {
	EntryID   string    `json:"id"`
	JournalID string    `json:"journalId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key lets Entry be stored in keyed collections.
func (e Entry) Key() string { return e.EntryID }

// Key lets JournalSummary be stored in keyed collections.
func (j JournalSummary) Key() string { return j.JournalID }
