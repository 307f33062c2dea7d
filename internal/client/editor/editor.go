// Package editor holds the state of one journal's entry editor: the entry
// list, the active entry and its autosaved content.
package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/burnout_journal/internal/client/cache"
	"github.com/SscSPs/burnout_journal/internal/client/debounce"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

const (
	// DefaultSaveDelay is the quiet period before an edit is saved.
	DefaultSaveDelay = time.Second
	// DefaultEntryCooldown is the minimum gap between creating two entries in a journal.
	DefaultEntryCooldown = 60 * time.Second
)

var (
	// ErrEntryCooldown is returned by AddEntry when the newest entry is too recent.
	ErrEntryCooldown = errors.New("an entry was created too recently")
	// ErrEntryNotFound is returned when an id is not in the local entry list.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrClosed is returned by operations on a closed editor.
	ErrClosed = errors.New("editor closed")
)

// EntryStore is the remote side of one journal's entries.
type EntryStore interface {
	CreateEntry(ctx context.Context, journalID string) (*domain.Entry, error)
	SaveEntry(ctx context.Context, journalID, entryID, content string) error
	DeleteEntry(ctx context.Context, journalID, entryID string) error
}

// State is a point-in-time copy of the editor.
type State struct {
	Entries          []domain.Entry
	ActiveEntryID    string
	Content          string
	LastSavedContent string
	IsSaving         bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithSaveDelay overrides DefaultSaveDelay.
func WithSaveDelay(d time.Duration) Option {
	return func(e *Editor) { e.saveDelay = d }
}

// WithEntryCooldown overrides DefaultEntryCooldown. Zero disables the check.
func WithEntryCooldown(d time.Duration) Option {
	return func(e *Editor) { e.cooldown = d }
}

// WithClock sets the time source for the cool-down check.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithLogger sets the logger used for failed remote writes.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithOnChange registers a listener called with the new state after every change.
func WithOnChange(fn func(State)) Option {
	return func(e *Editor) { e.onChange = fn }
}

// Editor is safe for concurrent use. Remote calls never run under its lock.
type Editor struct {
	store     EntryStore
	journalID string
	saveDelay time.Duration
	cooldown  time.Duration
	now       func() time.Time
	logger    *slog.Logger
	onChange  func(State)
	debouncer *debounce.Debouncer
	// saveCtx outlives individual calls; background saves are never cancelled.
	saveCtx context.Context

	mu        sync.Mutex
	entries   *cache.Collection[domain.Entry]
	activeID  string
	content   string
	lastSaved string
	isSaving  bool
	// resave is set when the timer fired while a save was in flight.
	resave   bool
	creating bool
	closed   bool
	// saves counts background saves still running; idle is signalled when it drops.
	saves int
	idle  *sync.Cond
}

// New returns an editor for journalID seeded with its entries (oldest first).
// The most recently created entry starts active.
func New(store EntryStore, journalID string, entries []domain.Entry, opts ...Option) *Editor {
	e := &Editor{
		store:     store,
		journalID: journalID,
		saveDelay: DefaultSaveDelay,
		cooldown:  DefaultEntryCooldown,
		now:       time.Now,
		logger:    slog.Default(),
		saveCtx:   context.Background(),
		entries:   cache.New(entries...),
	}
	e.idle = sync.NewCond(&e.mu)
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(slog.String("journal_id", journalID))
	e.debouncer = debounce.New(e.saveDelay)

	if newest, ok := e.newestLocked(); ok {
		e.activeID = newest.EntryID
		e.content = newest.Content
		e.lastSaved = newest.Content
	}
	return e
}

// JournalID returns the journal this editor works on.
func (e *Editor) JournalID() string {
	return e.journalID
}

// State returns a copy of the current state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Editor) stateLocked() State {
	return State{
		Entries:          e.entries.Items(),
		ActiveEntryID:    e.activeID,
		Content:          e.content,
		LastSavedContent: e.lastSaved,
		IsSaving:         e.isSaving,
	}
}

// UpdateContent replaces the active entry's live content and restarts the
// autosave timer. It does nothing when no entry is active.
func (e *Editor) UpdateContent(text string) {
	e.mu.Lock()
	if e.closed || e.activeID == "" {
		e.mu.Unlock()
		return
	}
	e.content = text
	state := e.stateLocked()
	e.mu.Unlock()

	e.debouncer.Trigger(e.autosave)
	e.notify(state)
}

// autosave runs when the content has been quiet for the save delay.
func (e *Editor) autosave() {
	e.mu.Lock()
	if e.closed || e.activeID == "" || e.content == e.lastSaved {
		e.mu.Unlock()
		return
	}
	if e.isSaving {
		e.resave = true
		e.mu.Unlock()
		return
	}
	e.isSaving = true
	e.resave = false
	entryID, sent := e.activeID, e.content
	e.saves++
	state := e.stateLocked()
	e.mu.Unlock()
	e.notify(state)

	err := e.store.SaveEntry(e.saveCtx, e.journalID, entryID, sent)

	e.mu.Lock()
	e.isSaving = false
	e.saveDoneLocked()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if err != nil {
		e.logger.Warn("Autosave failed", slog.String("entry_id", entryID), slog.String("error", err.Error()))
	} else if e.activeID == entryID {
		e.lastSaved = sent
		e.entries.Update(entryID, withContent(sent))
	}
	reschedule := e.resave && e.activeID != "" && e.content != e.lastSaved
	e.resave = false
	state = e.stateLocked()
	e.mu.Unlock()

	if reschedule {
		e.debouncer.Trigger(e.autosave)
	}
	e.notify(state)
}

// flushActiveLocked copies unsaved content into the entry list and saves it
// in the background without waiting for the result.
func (e *Editor) flushActiveLocked() {
	e.debouncer.Cancel()
	e.resave = false
	if e.activeID == "" || e.content == e.lastSaved {
		return
	}
	entryID, text := e.activeID, e.content
	e.entries.Update(entryID, withContent(text))

	e.saves++
	go func() {
		if err := e.store.SaveEntry(e.saveCtx, e.journalID, entryID, text); err != nil {
			e.logger.Warn("Failed to save entry before switching", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		}
		e.mu.Lock()
		e.saveDoneLocked()
		e.mu.Unlock()
	}()
}

func (e *Editor) saveDoneLocked() {
	e.saves--
	if e.saves == 0 {
		e.idle.Broadcast()
	}
}

// SelectEntry makes id the active entry, flushing unsaved content of the
// entry being left. Selecting the active entry does nothing.
func (e *Editor) SelectEntry(id string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if id == e.activeID {
		e.mu.Unlock()
		return nil
	}
	if !e.entries.Has(id) {
		e.mu.Unlock()
		return ErrEntryNotFound
	}
	e.flushActiveLocked()
	target, _ := e.entries.Get(id)
	e.activateLocked(target)
	state := e.stateLocked()
	e.mu.Unlock()

	e.notify(state)
	return nil
}

// AddEntry flushes the active entry, creates an empty entry remotely and
// makes it active. It returns ErrEntryCooldown without a remote call when the
// newest entry is younger than the cool-down or another add is in flight.
func (e *Editor) AddEntry(ctx context.Context) (*domain.Entry, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	if e.creating {
		e.mu.Unlock()
		return nil, ErrEntryCooldown
	}
	if newest, ok := e.newestLocked(); ok && e.cooldown > 0 && e.now().Sub(newest.CreatedAt) < e.cooldown {
		e.mu.Unlock()
		return nil, ErrEntryCooldown
	}
	e.creating = true
	e.flushActiveLocked()
	leftID, leftContent := e.activeID, e.content
	state := e.stateLocked()
	e.mu.Unlock()
	e.notify(state)

	created, err := e.store.CreateEntry(ctx, e.journalID)

	e.mu.Lock()
	e.creating = false
	if err != nil {
		e.mu.Unlock()
		e.logger.Warn("Failed to create entry", slog.String("error", err.Error()))
		return nil, err
	}
	if e.closed {
		e.mu.Unlock()
		return created, nil
	}
	// text typed while the request was pending belongs to the entry being left
	if e.activeID == leftID && e.content != leftContent {
		e.flushActiveLocked()
	}
	entry := *created
	entry.JournalID = e.journalID
	e.entries.Append(entry)
	e.activateLocked(entry)
	state = e.stateLocked()
	e.mu.Unlock()

	e.notify(state)
	return &entry, nil
}

// DeleteEntry removes id from the list before the remote delete completes.
// If it was active, the most recently created remaining entry becomes active.
// A failed delete puts the entry back at its old position and returns the error.
func (e *Editor) DeleteEntry(ctx context.Context, id string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if !e.entries.Has(id) {
		e.mu.Unlock()
		return ErrEntryNotFound
	}
	position, _ := e.entries.IndexOf(id)
	prevActive, prevContent, prevSaved := e.activeID, e.content, e.lastSaved
	wasActive := id == e.activeID

	removed, _ := e.entries.Remove(id)
	if wasActive {
		e.debouncer.Cancel()
		e.resave = false
		if newest, ok := e.newestLocked(); ok {
			e.activateLocked(newest)
		} else {
			e.activeID, e.content, e.lastSaved = "", "", ""
		}
	}
	state := e.stateLocked()
	e.mu.Unlock()
	e.notify(state)

	err := e.store.DeleteEntry(ctx, e.journalID, id)
	if err == nil {
		return nil
	}

	e.logger.Warn("Failed to delete entry, restoring it", slog.String("entry_id", id), slog.String("error", err.Error()))
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return err
	}
	e.entries.Insert(position, removed)
	if wasActive && e.activeID == "" {
		e.activeID, e.content, e.lastSaved = prevActive, prevContent, prevSaved
	}
	state = e.stateLocked()
	e.mu.Unlock()
	e.notify(state)
	return err
}

// Flush runs a pending autosave on the calling goroutine.
func (e *Editor) Flush() {
	e.debouncer.Flush()
}

// Wait blocks until no background save is running. Saves may start while it
// waits; it returns once they have all finished.
func (e *Editor) Wait() {
	e.mu.Lock()
	for e.saves > 0 {
		e.idle.Wait()
	}
	e.mu.Unlock()
}

// Close stops autosaving. Saves already in flight complete but their results
// no longer change the state.
func (e *Editor) Close() {
	e.debouncer.Cancel()
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

func (e *Editor) activateLocked(entry domain.Entry) {
	e.activeID = entry.EntryID
	e.content = entry.Content
	e.lastSaved = entry.Content
}

// newestLocked returns the most recently created entry.
func (e *Editor) newestLocked() (domain.Entry, bool) {
	return cache.MaxBy(e.entries, func(a, b domain.Entry) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func (e *Editor) notify(state State) {
	if e.onChange != nil {
		e.onChange(state)
	}
}

func withContent(content string) func(domain.Entry) domain.Entry {
	return func(en domain.Entry) domain.Entry {
		en.Content = content
		return en
	}
}
