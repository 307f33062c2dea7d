package editor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJournal = "2025-03-14"
	quiet       = 40 * time.Millisecond
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type savedCall struct {
	entryID string
	content string
}

type fakeStore struct {
	mu        sync.Mutex
	saves     []savedCall
	deletes   []string
	creates   atomic.Int32
	saveErr   error
	deleteErr error
	createErr error
	nextEntry domain.Entry
	// saveGate, when set, blocks saves until closed.
	saveGate    chan struct{}
	saveEntered chan struct{}
	// createGate and deleteGate do the same for creates and deletes.
	createGate    chan struct{}
	createEntered chan struct{}
	deleteGate    chan struct{}
	deleteEntered chan struct{}
}

func (f *fakeStore) CreateEntry(ctx context.Context, journalID string) (*domain.Entry, error) {
	f.creates.Add(1)
	if f.createEntered != nil {
		f.createEntered <- struct{}{}
	}
	if f.createGate != nil {
		<-f.createGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := f.nextEntry
	return &e, nil
}

func (f *fakeStore) SaveEntry(ctx context.Context, journalID, entryID, content string) error {
	f.mu.Lock()
	f.saves = append(f.saves, savedCall{entryID, content})
	gate, entered, err := f.saveGate, f.saveEntered, f.saveErr
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeStore) DeleteEntry(ctx context.Context, journalID, entryID string) error {
	if f.deleteEntered != nil {
		f.deleteEntered <- struct{}{}
	}
	if f.deleteGate != nil {
		<-f.deleteGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, entryID)
	return f.deleteErr
}

func (f *fakeStore) savedCalls() []savedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]savedCall, len(f.saves))
	copy(out, f.saves)
	return out
}

func entry(id, content string, createdOffset time.Duration) domain.Entry {
	return domain.Entry{EntryID: id, JournalID: testJournal, Content: content, CreatedAt: t0.Add(createdOffset), UpdatedAt: t0.Add(createdOffset)}
}

func newEditor(store *fakeStore, entries []domain.Entry, opts ...Option) *Editor {
	base := []Option{
		WithSaveDelay(quiet),
		WithClock(func() time.Time { return t0.Add(time.Hour) }),
	}
	return New(store, testJournal, entries, append(base, opts...)...)
}

func contentOf(t *testing.T, st State, id string) string {
	t.Helper()
	for _, e := range st.Entries {
		if e.EntryID == id {
			return e.Content
		}
	}
	t.Fatalf("entry %s not in list", id)
	return ""
}

func TestNewActivatesNewestEntry(t *testing.T) {
	ed := newEditor(&fakeStore{}, []domain.Entry{entry("a", "first", 0), entry("b", "second", time.Minute)})
	st := ed.State()
	assert.Equal(t, "b", st.ActiveEntryID)
	assert.Equal(t, "second", st.Content)
	assert.Equal(t, "second", st.LastSavedContent)

	empty := newEditor(&fakeStore{}, nil)
	assert.Empty(t, empty.State().ActiveEntryID)
}

func TestDebouncedSaveSendsFinalContentOnce(t *testing.T) {
	store := &fakeStore{}
	ed := newEditor(store, []domain.Entry{entry("a", "", 0)})

	ed.UpdateContent("draft")
	time.Sleep(quiet / 4)
	ed.UpdateContent("final")
	assert.Equal(t, "final", ed.State().Content, "content updates immediately")
	assert.Empty(t, store.savedCalls())

	require.Eventually(t, func() bool { return len(store.savedCalls()) == 1 }, time.Second, 5*time.Millisecond)
	ed.Wait()
	time.Sleep(2 * quiet)

	assert.Equal(t, []savedCall{{"a", "final"}}, store.savedCalls())
	st := ed.State()
	assert.Equal(t, "final", st.LastSavedContent)
	assert.False(t, st.IsSaving)
	assert.Equal(t, "final", contentOf(t, st, "a"))
}

func TestNoSaveWhenContentRevertsToLastSaved(t *testing.T) {
	store := &fakeStore{}
	ed := newEditor(store, []domain.Entry{entry("a", "stored", 0)})

	ed.UpdateContent("stored plus")
	ed.UpdateContent("stored")
	time.Sleep(3 * quiet)
	ed.Wait()

	assert.Empty(t, store.savedCalls())
}

func TestSingleSaveInFlightAndResave(t *testing.T) {
	store := &fakeStore{saveGate: make(chan struct{}), saveEntered: make(chan struct{}, 10)}
	ed := newEditor(store, []domain.Entry{entry("a", "", 0)})

	ed.UpdateContent("one")
	<-store.saveEntered
	assert.True(t, ed.State().IsSaving)

	// A newer value while the first save is in flight must wait for it.
	ed.UpdateContent("one two")
	time.Sleep(3 * quiet)
	assert.Len(t, store.savedCalls(), 1)

	store.mu.Lock()
	gate := store.saveGate
	store.saveGate = nil
	store.mu.Unlock()
	close(gate)

	require.Eventually(t, func() bool { return len(store.savedCalls()) == 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return ed.State().LastSavedContent == "one two" }, time.Second, 5*time.Millisecond)
	ed.Wait()

	assert.Equal(t, []savedCall{{"a", "one"}, {"a", "one two"}}, store.savedCalls())
}

func TestLastSavedAdvancesToSentContent(t *testing.T) {
	store := &fakeStore{saveGate: make(chan struct{}), saveEntered: make(chan struct{}, 10)}
	ed := newEditor(store, []domain.Entry{entry("a", "", 0)}, WithSaveDelay(time.Hour))

	ed.UpdateContent("sent")
	go ed.Flush()
	<-store.saveEntered
	ed.UpdateContent("sent and more")
	close(store.saveGate)

	require.Eventually(t, func() bool { return ed.State().LastSavedContent == "sent" }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "sent and more", ed.State().Content)
	ed.Close()
}

func TestFailedSaveKeepsLastSaved(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("offline")}
	ed := newEditor(store, []domain.Entry{entry("a", "old", 0)})

	ed.UpdateContent("new")
	require.Eventually(t, func() bool { return len(store.savedCalls()) == 1 }, time.Second, 5*time.Millisecond)
	ed.Wait()
	require.Eventually(t, func() bool { return !ed.State().IsSaving }, time.Second, 5*time.Millisecond)

	st := ed.State()
	assert.Equal(t, "old", st.LastSavedContent)
	assert.Equal(t, "new", st.Content)

	// The next edit retries with the still divergent content.
	store.mu.Lock()
	store.saveErr = nil
	store.mu.Unlock()
	ed.UpdateContent("newer")
	require.Eventually(t, func() bool { return ed.State().LastSavedContent == "newer" }, time.Second, 5*time.Millisecond)
}

func TestSelectEntryFlushesUnsavedContent(t *testing.T) {
	store := &fakeStore{}
	ed := newEditor(store, []domain.Entry{entry("b", "stored b", 0), entry("a", "", time.Minute)})
	require.Equal(t, "a", ed.State().ActiveEntryID)

	ed.UpdateContent("X")
	require.NoError(t, ed.SelectEntry("b"))

	st := ed.State()
	assert.Equal(t, "X", contentOf(t, st, "a"), "list reflects the flushed text immediately")
	assert.Equal(t, "b", st.ActiveEntryID)
	assert.Equal(t, "stored b", st.Content)
	assert.Equal(t, "stored b", st.LastSavedContent)

	ed.Wait()
	time.Sleep(2 * quiet)
	assert.Equal(t, []savedCall{{"a", "X"}}, store.savedCalls(), "debounced save is replaced by the flush")
}

func TestSelectEntryWithoutChangesDoesNotSave(t *testing.T) {
	store := &fakeStore{}
	ed := newEditor(store, []domain.Entry{entry("a", "x", 0), entry("b", "y", time.Minute)})

	require.NoError(t, ed.SelectEntry("a"))
	require.NoError(t, ed.SelectEntry("a"))
	ed.Wait()

	assert.Empty(t, store.savedCalls())
	assert.ErrorIs(t, ed.SelectEntry("missing"), ErrEntryNotFound)
}

func TestAddEntry(t *testing.T) {
	store := &fakeStore{nextEntry: entry("new", "", 2*time.Hour)}
	ed := newEditor(store, []domain.Entry{entry("a", "", 0)})

	ed.UpdateContent("unsaved")
	created, err := ed.AddEntry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", created.EntryID)

	st := ed.State()
	assert.Equal(t, "new", st.ActiveEntryID)
	assert.Empty(t, st.Content)
	assert.Empty(t, st.LastSavedContent)
	require.Len(t, st.Entries, 2)
	assert.Equal(t, "new", st.Entries[1].EntryID)
	assert.Equal(t, "unsaved", contentOf(t, st, "a"))

	ed.Wait()
	assert.Equal(t, []savedCall{{"a", "unsaved"}}, store.savedCalls())
}

func TestAddEntryKeepsTextTypedWhileCreating(t *testing.T) {
	store := &fakeStore{
		nextEntry:     entry("new", "", 2*time.Hour),
		createGate:    make(chan struct{}),
		createEntered: make(chan struct{}, 1),
	}
	ed := newEditor(store, []domain.Entry{entry("a", "saved", 0)})

	done := make(chan error, 1)
	go func() {
		_, err := ed.AddEntry(context.Background())
		done <- err
	}()
	<-store.createEntered
	ed.UpdateContent("typed while creating")
	close(store.createGate)
	require.NoError(t, <-done)

	ed.Wait()
	time.Sleep(3 * quiet)
	ed.Wait()

	st := ed.State()
	assert.Equal(t, "new", st.ActiveEntryID)
	assert.Empty(t, st.Content)
	assert.Equal(t, "typed while creating", contentOf(t, st, "a"))
	assert.Equal(t, []savedCall{{"a", "typed while creating"}}, store.savedCalls())
}

func TestAddEntryTwiceWithinCooldown(t *testing.T) {
	now := t0.Add(time.Hour)
	store := &fakeStore{nextEntry: entry("new", "", time.Hour)}
	ed := newEditor(store, []domain.Entry{entry("a", "", 0)}, WithClock(func() time.Time { return now }))

	_, err := ed.AddEntry(context.Background())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = ed.AddEntry(context.Background())
	assert.ErrorIs(t, err, ErrEntryCooldown)
	assert.Equal(t, int32(1), store.creates.Load())
	assert.Len(t, ed.State().Entries, 2)

	now = now.Add(31 * time.Second)
	store.nextEntry = entry("later", "", time.Hour+61*time.Second)
	_, err = ed.AddEntry(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), store.creates.Load())
}

func TestAddEntryCooldownDisabled(t *testing.T) {
	store := &fakeStore{nextEntry: entry("new", "", time.Hour)}
	ed := newEditor(store, []domain.Entry{entry("a", "", time.Hour)}, WithEntryCooldown(0))

	_, err := ed.AddEntry(context.Background())
	assert.NoError(t, err)
}

func TestAddEntryFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("429")}
	ed := newEditor(store, []domain.Entry{entry("a", "keep", 0)})

	_, err := ed.AddEntry(context.Background())
	assert.Error(t, err)
	st := ed.State()
	assert.Equal(t, "a", st.ActiveEntryID)
	assert.Len(t, st.Entries, 1)
}

func TestDeleteActiveSelectsNewestRemaining(t *testing.T) {
	store := &fakeStore{}
	entries := []domain.Entry{
		entry("old", "oldest text", 0),
		entry("mid", "mid text\nwith lines ✓", time.Minute),
		entry("new", "newest", 2*time.Minute),
	}
	ed := newEditor(store, entries)
	require.Equal(t, "new", ed.State().ActiveEntryID)

	require.NoError(t, ed.DeleteEntry(context.Background(), "new"))

	st := ed.State()
	assert.Equal(t, "mid", st.ActiveEntryID)
	assert.Equal(t, "mid text\nwith lines ✓", st.Content)
	assert.Equal(t, st.Content, st.LastSavedContent)
	assert.Len(t, st.Entries, 2)
	assert.Equal(t, []string{"new"}, store.deletes)
}

func TestDeleteInactiveKeepsActive(t *testing.T) {
	ed := newEditor(&fakeStore{}, []domain.Entry{entry("a", "", 0), entry("b", "typing", time.Minute)})
	ed.UpdateContent("typing more")

	require.NoError(t, ed.DeleteEntry(context.Background(), "a"))

	st := ed.State()
	assert.Equal(t, "b", st.ActiveEntryID)
	assert.Equal(t, "typing more", st.Content)
	ed.Close()
}

func TestDeleteLastEntryClearsActive(t *testing.T) {
	ed := newEditor(&fakeStore{}, []domain.Entry{entry("a", "x", 0)})

	require.NoError(t, ed.DeleteEntry(context.Background(), "a"))

	st := ed.State()
	assert.Empty(t, st.ActiveEntryID)
	assert.Empty(t, st.Content)
	assert.Empty(t, st.Entries)
}

func TestDeleteFailureRollsBack(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("offline")}
	entries := []domain.Entry{entry("a", "x", 0), entry("b", "y", time.Minute)}
	ed := newEditor(store, entries)

	err := ed.DeleteEntry(context.Background(), "a")
	assert.Error(t, err)
	assert.Equal(t, entries, ed.State().Entries)
	assert.Equal(t, "b", ed.State().ActiveEntryID)

	assert.ErrorIs(t, ed.DeleteEntry(context.Background(), "zz"), ErrEntryNotFound)
}

func TestDeleteFailureKeepsContentSavedMeanwhile(t *testing.T) {
	store := &fakeStore{
		deleteErr:     errors.New("offline"),
		deleteGate:    make(chan struct{}),
		deleteEntered: make(chan struct{}, 1),
	}
	ed := newEditor(store, []domain.Entry{entry("a", "x", 0), entry("b", "y", time.Minute)})

	done := make(chan error, 1)
	go func() { done <- ed.DeleteEntry(context.Background(), "a") }()
	<-store.deleteEntered

	ed.UpdateContent("fresh")
	require.Eventually(t, func() bool { return ed.State().LastSavedContent == "fresh" }, time.Second, quiet/4)
	ed.Wait()

	close(store.deleteGate)
	assert.Error(t, <-done)

	st := ed.State()
	require.Len(t, st.Entries, 2)
	assert.Equal(t, "a", st.Entries[0].EntryID)
	assert.Equal(t, "x", contentOf(t, st, "a"))
	assert.Equal(t, "fresh", contentOf(t, st, "b"))
	assert.Equal(t, "b", st.ActiveEntryID)
}

func TestDeleteOnlyEntryFailureRestoresActive(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("offline")}
	ed := newEditor(store, []domain.Entry{entry("a", "x", 0)})

	assert.Error(t, ed.DeleteEntry(context.Background(), "a"))
	st := ed.State()
	assert.Equal(t, "a", st.ActiveEntryID)
	assert.Equal(t, "x", st.Content)
}

func TestCloseDropsLateResults(t *testing.T) {
	store := &fakeStore{saveGate: make(chan struct{}), saveEntered: make(chan struct{}, 1)}
	ed := newEditor(store, []domain.Entry{entry("a", "", 0)})

	ed.UpdateContent("late")
	<-store.saveEntered
	ed.Close()
	close(store.saveGate)
	ed.Wait()

	assert.Empty(t, ed.State().LastSavedContent)
	ed.UpdateContent("ignored")
	assert.Equal(t, "late", ed.State().Content)
	_, err := ed.AddEntry(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestUpdateWithoutActiveEntryIsIgnored(t *testing.T) {
	store := &fakeStore{}
	ed := newEditor(store, nil)
	ed.UpdateContent("nowhere")
	time.Sleep(2 * quiet)
	assert.Empty(t, ed.State().Content)
	assert.Empty(t, store.savedCalls())
}

func TestWaitCoversSavesStartedWhileWaiting(t *testing.T) {
	store := &fakeStore{saveGate: make(chan struct{}), saveEntered: make(chan struct{}, 2)}
	ed := newEditor(store, []domain.Entry{entry("a", "", 0), entry("b", "", time.Minute)})

	ed.UpdateContent("first")
	<-store.saveEntered

	waited := make(chan struct{})
	go func() {
		ed.Wait()
		close(waited)
	}()
	isDone := func() bool {
		select {
		case <-waited:
			return true
		default:
			return false
		}
	}

	ed.UpdateContent("second")
	require.NoError(t, ed.SelectEntry("a"))
	<-store.saveEntered
	assert.Never(t, isDone, 2*quiet, quiet/4)

	close(store.saveGate)
	assert.Eventually(t, isDone, time.Second, quiet/4)
	assert.Equal(t, []savedCall{{"b", "first"}, {"b", "second"}}, store.savedCalls())
}
