package models

import "time"

// Journal is a row of the journals table. JournalDate is a DATE column.
type Journal struct {
	UserID      string    `db:"user_id"`
	JournalDate time.Time `db:"journal_date"`
	Hidden      bool      `db:"hidden"`
	CreatedAt   time.Time `db:"created_at"`
}

// Entry is a row of the journal_entries table.
type Entry struct {
	EntryID     string    `db:"entry_id"`
	UserID      string    `db:"user_id"`
	JournalDate time.Time `db:"journal_date"`
	Content     string    `db:"content"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
