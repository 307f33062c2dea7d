package domain

import (
	"time"
)

// JournalDateLayout is the calendar-date format used as a journal's identifier.
const JournalDateLayout = "2006-01-02"

// Journal is one user's container for a calendar day. Its ID is the date itself,
// so a user can never have two journals for the same day.
type Journal struct {
	JournalID string    `json:"id"`
	UserID    string    `json:"-"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"createdAt"`
}

// JournalSummary is the list-view projection of a Journal.
type JournalSummary struct {
	JournalID string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Hidden    bool      `json:"hidden,omitempty"`
}

// Summary projects the journal for list views.
func (j Journal) Summary() JournalSummary {
	return JournalSummary{JournalID: j.JournalID, CreatedAt: j.CreatedAt, Hidden: j.Hidden}
}

// JournalWithEntries is a journal plus its entries ordered by creation time ascending.
type JournalWithEntries struct {
	Journal Journal `json:"journal"`
	Entries []Entry `json:"entries"`
}

// IsValidJournalDate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidJournalDate(s string) bool {
	t, err := time.Parse(JournalDateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(JournalDateLayout) == s
}

// JournalDateFor returns the journal id for the calendar day containing t in loc.
func JournalDateFor(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(JournalDateLayout)
}
