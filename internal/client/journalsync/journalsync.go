// Package journalsync keeps a paginated, de-duplicated local view of a user's
// journals in step with the remote store.
package journalsync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/burnout_journal/internal/client/cache"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/SscSPs/burnout_journal/internal/utils/pagination"
)

const (
	// DefaultPageSize is the number of journals fetched per page.
	DefaultPageSize = 20
	// MaxPageSize is the largest page the journal API serves.
	MaxPageSize = pagination.MaxPageSize
	// LoadErrorMessage is shown when any page fetch fails.
	LoadErrorMessage = "Could not load journals."
)

// ListSource returns journals ordered by id descending, hidden ones excluded,
// starting strictly after startAfterID when it is non-empty. It returns fewer
// than pageSize items only when the list is exhausted.
type ListSource interface {
	ListJournals(ctx context.Context, pageSize int, startAfterID string) ([]domain.JournalSummary, error)
}

// State is a point-in-time copy of the list.
type State struct {
	Journals    []domain.JournalSummary
	Loading     bool
	LoadingMore bool
	HasMore     bool
	Error       string
}

// Option configures a Sync.
type Option func(*Sync)

// WithPageSize overrides DefaultPageSize. Sizes above MaxPageSize are capped.
func WithPageSize(n int) Option {
	return func(s *Sync) {
		if n > 0 {
			s.pageSize = min(n, MaxPageSize)
		}
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sync) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnChange registers a listener called with the new state after every change.
// It runs on the goroutine that made the change, outside the lock.
func WithOnChange(fn func(State)) Option {
	return func(s *Sync) { s.onChange = fn }
}

// Sync is the journal list of one view. It is safe for concurrent use;
// overlapping calls are resolved by the guards on each method rather than queued.
type Sync struct {
	source   ListSource
	pageSize int
	logger   *slog.Logger
	onChange func(State)

	mu          sync.Mutex
	journals    *cache.Collection[domain.JournalSummary]
	cursor      string
	loading     bool
	loadingMore bool
	hasMore     bool
	errMsg      string
	started     bool
	closed      bool
	// generation changes on Refresh so that responses to older requests are dropped.
	generation uint64
}

// New returns a Sync in its cold-start state: loading with more assumed available.
func New(source ListSource, opts ...Option) *Sync {
	s := &Sync{
		source:   source,
		pageSize: DefaultPageSize,
		logger:   slog.Default(),
		journals: cache.New[domain.JournalSummary](),
		loading:  true,
		hasMore:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Sync) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Sync) stateLocked() State {
	return State{
		Journals:    s.journals.Items(),
		Loading:     s.loading,
		LoadingMore: s.loadingMore,
		HasMore:     s.hasMore,
		Error:       s.errMsg,
	}
}

// LoadInitial fetches the first page. Only the first call on an instance does
// anything; later and concurrent calls return immediately.
func (s *Sync) LoadInitial(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	gen := s.generation
	s.mu.Unlock()

	s.fetchFirstPage(ctx, gen)
}

// Refresh drops everything loaded so far and fetches the first page again.
// Responses to requests issued before the refresh are ignored.
func (s *Sync) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.started = true
	s.journals.Reset()
	s.cursor = ""
	s.hasMore = true
	s.loading = true
	s.loadingMore = false
	s.errMsg = ""
	s.mu.Unlock()

	s.fetchFirstPage(ctx, gen)
}

func (s *Sync) fetchFirstPage(ctx context.Context, gen uint64) {
	s.mu.Lock()
	s.loading = true
	state := s.stateLocked()
	s.mu.Unlock()
	s.notify(state)

	page, err := s.source.ListJournals(ctx, s.pageSize, "")

	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		s.logger.Warn("Failed to load journals", slog.String("error", err.Error()))
		s.errMsg = LoadErrorMessage
	} else {
		s.errMsg = ""
		s.journals.Replace(page)
		s.advanceLocked(page)
	}
	state = s.stateLocked()
	s.mu.Unlock()
	s.notify(state)
}

// LoadMore fetches the page after the cursor. It does nothing while any load
// is in flight, when no more journals exist, or before a first page has
// loaded; recovering from a failed first page goes through Refresh.
func (s *Sync) LoadMore(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.loading || s.loadingMore || !s.hasMore || s.cursor == "" {
		s.mu.Unlock()
		return
	}
	s.loadingMore = true
	cursor := s.cursor
	gen := s.generation
	state := s.stateLocked()
	s.mu.Unlock()
	s.notify(state)

	page, err := s.source.ListJournals(ctx, s.pageSize, cursor)

	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.loadingMore = false
	if err != nil {
		s.logger.Warn("Failed to load more journals", slog.String("cursor", cursor), slog.String("error", err.Error()))
		s.errMsg = LoadErrorMessage
	} else {
		s.errMsg = ""
		s.journals.Merge(page)
		s.advanceLocked(page)
	}
	state = s.stateLocked()
	s.mu.Unlock()
	s.notify(state)
}

// advanceLocked moves the cursor to the page's last id and recomputes hasMore.
func (s *Sync) advanceLocked(page []domain.JournalSummary) {
	if len(page) > 0 {
		s.cursor = page[len(page)-1].JournalID
	}
	s.hasMore = len(page) == s.pageSize
}

// Close detaches the view. Responses that arrive afterwards are dropped.
func (s *Sync) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Sync) notify(state State) {
	if s.onChange != nil {
		s.onChange(state)
	}
}
