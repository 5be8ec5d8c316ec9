package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/berktools/berk/internal/api"
	"github.com/berktools/berk/internal/storage"
	"github.com/berktools/berk/internal/word"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeDictionary records calls. Setting a gate channel makes the matching
// call block until the channel is closed.
type fakeDictionary struct {
	mu sync.Mutex

	lookup     map[string]word.WordData
	lookupErr  error
	saved      []word.SavedLemma
	listErr    error
	details    map[string]word.WordData
	detailsErr error
	saveErr    error
	deleteErr  error

	lookupGate  chan struct{}
	saveGate    chan struct{}
	deleteGate  chan struct{}
	detailsGate chan struct{}

	lookupCalls  atomic.Int32
	saveCalls    atomic.Int32
	deleteCalls  atomic.Int32
	detailsCalls atomic.Int32

	started chan string
}

var _ api.Dictionary = (*fakeDictionary)(nil)

func newFakeDictionary() *fakeDictionary {
	return &fakeDictionary{
		lookup:  map[string]word.WordData{},
		details: map[string]word.WordData{},
		started: make(chan string, 16),
	}
}

func wait(gate chan struct{}) {
	if gate != nil {
		<-gate
	}
}

func (f *fakeDictionary) Lookup(_ context.Context, query string) (word.WordData, error) {
	f.lookupCalls.Add(1)
	f.started <- "lookup"
	wait(f.lookupGate)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return word.WordData{}, f.lookupErr
	}
	if d, ok := f.lookup[query]; ok {
		return d, nil
	}
	return word.ToWordData(nil, query), nil
}

func (f *fakeDictionary) ListSaved(context.Context) ([]word.SavedLemma, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]word.SavedLemma(nil), f.saved...), nil
}

func (f *fakeDictionary) LoadDetails(_ context.Context, lemma string) (word.WordData, error) {
	f.detailsCalls.Add(1)
	f.started <- "details"
	wait(f.detailsGate)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detailsErr != nil {
		return word.WordData{}, f.detailsErr
	}
	if d, ok := f.details[lemma]; ok {
		return d, nil
	}
	return word.ToWordData(nil, lemma), nil
}

func (f *fakeDictionary) Save(context.Context, word.WordData) error {
	f.saveCalls.Add(1)
	f.started <- "save"
	wait(f.saveGate)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveErr
}

func (f *fakeDictionary) Delete(context.Context, string) error {
	f.deleteCalls.Add(1)
	f.started <- "delete"
	wait(f.deleteGate)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteErr
}

type recordingMirror struct {
	mu     sync.Mutex
	stored [][]word.SavedLemma
	cached []word.SavedLemma
	has    bool
}

func (m *recordingMirror) Load() ([]word.SavedLemma, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cached, m.has
}

func (m *recordingMirror) Store(saved []word.SavedLemma) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = append(m.stored, saved)
}

func (m *recordingMirror) last() []word.SavedLemma {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stored) == 0 {
		return nil
	}
	return m.stored[len(m.stored)-1]
}

func failed(op string) error {
	return &api.RequestError{Op: op, Status: 500, Message: "boom"}
}

func awaitStart(t *testing.T, f *fakeDictionary, want string) {
	t.Helper()
	select {
	case got := <-f.started:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s to start", want)
	}
}

func newWorkflow(t *testing.T, dict *fakeDictionary, mirror Mirror) *Workflow {
	t.Helper()
	fixed := time.Date(2025, 5, 4, 3, 2, 1, 0, time.UTC)
	return New(dict, mirror, zaptest.NewLogger(t), WithClock(func() time.Time { return fixed }))
}

func TestSearch_EndToEndSerendipity(t *testing.T) {
	dict := newFakeDictionary()
	dict.lookup["serendipity"] = word.ToWordData(&word.LookupResponse{
		Target:          "serendipity",
		MeaningEN:       "finding good things by chance",
		Examples:        []string{"It was pure serendipity."},
		MeaningTR:       []word.TurkishMeaning{},
		Etymology:       &word.EtymologySource{Text: "Coined by Horace Walpole."},
		RememberInsight: "Serendip, the old name of Sri Lanka.",
	}, "serendipity")
	dict.lookupGate = make(chan struct{})
	w := newWorkflow(t, dict, nil)

	assert.Equal(t, SearchIdle, w.Snapshot().Search)

	done := make(chan error, 1)
	go func() { done <- w.Search(context.Background(), "  serendipity ") }()
	awaitStart(t, dict, "lookup")
	assert.Equal(t, SearchSearching, w.Snapshot().Search)

	close(dict.lookupGate)
	require.NoError(t, <-done)

	snap := w.Snapshot()
	require.True(t, snap.HasResult())
	assert.Equal(t, SearchResult, snap.Search)
	assert.Equal(t, "serendipity", snap.Result.Word)
	assert.Empty(t, snap.Result.TurkishEquivalent)
	assert.False(t, snap.ResultSaved())
	assert.True(t, snap.CanSave())
}

func TestSearch_BlankIsNoop(t *testing.T) {
	dict := newFakeDictionary()
	w := newWorkflow(t, dict, nil)

	require.NoError(t, w.Search(context.Background(), "   "))
	assert.Zero(t, dict.lookupCalls.Load())
	assert.Equal(t, SearchIdle, w.Snapshot().Search)
}

func TestSearch_ReentrantCallIsIgnored(t *testing.T) {
	dict := newFakeDictionary()
	dict.lookupGate = make(chan struct{})
	w := newWorkflow(t, dict, nil)

	done := make(chan error, 1)
	go func() { done <- w.Search(context.Background(), "run") }()
	awaitStart(t, dict, "lookup")

	assert.ErrorIs(t, w.Search(context.Background(), "walk"), ErrBusy)
	close(dict.lookupGate)
	require.NoError(t, <-done)

	assert.EqualValues(t, 1, dict.lookupCalls.Load())
	assert.Equal(t, "run", w.Snapshot().Result.Word)
}

func TestSearch_FailureSurfacesNotice(t *testing.T) {
	dict := newFakeDictionary()
	dict.lookupErr = failed("search word")
	w := newWorkflow(t, dict, nil)

	err := w.Search(context.Background(), "run")
	require.ErrorIs(t, err, api.ErrRequestFailed)

	snap := w.Snapshot()
	assert.Equal(t, SearchFailed, snap.Search)
	assert.Nil(t, snap.Result)
	require.NotNil(t, snap.Notice)
	assert.Equal(t, NoticeError, snap.Notice.Kind)
	assert.Equal(t, "Failed to search word. Please try again.", snap.Notice.Text)
	assert.Equal(t, snap.Notice.Text, snap.SearchError)
	assert.False(t, snap.SessionExpired)

	w.DismissNotice()
	assert.Nil(t, w.Snapshot().Notice)
}

func TestSearch_SessionExpiredFlagsSnapshot(t *testing.T) {
	dict := newFakeDictionary()
	dict.lookupErr = api.ErrSessionExpired
	w := newWorkflow(t, dict, nil)

	require.ErrorIs(t, w.Search(context.Background(), "run"), api.ErrSessionExpired)
	snap := w.Snapshot()
	assert.True(t, snap.SessionExpired)
	assert.Equal(t, SessionExpiredNotice, snap.Notice.Text)
}

func TestSave_GuardIssuesExactlyOneRequest(t *testing.T) {
	dict := newFakeDictionary()
	dict.saveGate = make(chan struct{})
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.Search(context.Background(), "run"))
	awaitStart(t, dict, "lookup")

	done := make(chan error, 1)
	go func() { done <- w.Save(context.Background()) }()
	awaitStart(t, dict, "save")

	assert.True(t, w.Snapshot().Saving)
	assert.ErrorIs(t, w.Save(context.Background()), ErrBusy)

	close(dict.saveGate)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, dict.saveCalls.Load())
}

func TestSave_SuccessAppendsCachesAndMirrors(t *testing.T) {
	dict := newFakeDictionary()
	mirror := &recordingMirror{}
	w := newWorkflow(t, dict, mirror)
	require.NoError(t, w.LoadSaved(context.Background()))
	require.NoError(t, w.Search(context.Background(), "run"))
	awaitStart(t, dict, "lookup")

	require.NoError(t, w.Save(context.Background()))
	awaitStart(t, dict, "save")

	snap := w.Snapshot()
	assert.Equal(t, []word.SavedLemma{{Lemma: "run", CreatedAt: "2025-05-04T03:02:01Z"}}, snap.Saved)
	assert.False(t, snap.Saving)
	assert.True(t, snap.ResultSaved())
	assert.False(t, snap.CanSave())
	require.NotNil(t, snap.Notice)
	assert.Equal(t, Notice{Kind: NoticeSuccess, Text: SavedNotice}, *snap.Notice)
	_, cached := snap.Detail("run")
	assert.True(t, cached)
	assert.Equal(t, snap.Saved, mirror.last())

	assert.ErrorIs(t, w.Save(context.Background()), ErrAlreadySaved)
	assert.EqualValues(t, 1, dict.saveCalls.Load())
}

func TestSave_AlreadySavedIgnoresCase(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "Run"}}
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.LoadSaved(context.Background()))
	require.NoError(t, w.Search(context.Background(), "run"))
	awaitStart(t, dict, "lookup")

	snap := w.Snapshot()
	assert.True(t, snap.ResultSaved())
	assert.False(t, snap.CanSave())
	assert.True(t, w.IsSaved("RUN"))
	assert.ErrorIs(t, w.Save(context.Background()), ErrAlreadySaved)
	assert.Zero(t, dict.saveCalls.Load())
}

func TestSave_WithoutResult(t *testing.T) {
	w := newWorkflow(t, newFakeDictionary(), nil)
	assert.ErrorIs(t, w.Save(context.Background()), ErrNoResult)
}

func TestSave_FailureLeavesCollectionUnchanged(t *testing.T) {
	dict := newFakeDictionary()
	dict.saveErr = failed("save word")
	mirror := &recordingMirror{}
	w := newWorkflow(t, dict, mirror)
	require.NoError(t, w.Search(context.Background(), "run"))
	awaitStart(t, dict, "lookup")

	require.ErrorIs(t, w.Save(context.Background()), api.ErrRequestFailed)
	awaitStart(t, dict, "save")

	snap := w.Snapshot()
	assert.Empty(t, snap.Saved)
	assert.False(t, snap.Saving)
	assert.True(t, snap.CanSave())
	assert.Equal(t, "Failed to save word. Please try again.", snap.Notice.Text)
	assert.Empty(t, mirror.stored)
}

func TestSave_BeforeLoadLeavesMirrorAlone(t *testing.T) {
	dict := newFakeDictionary()
	kv := storage.NewMemory()
	mirror := NewStorageMirror(kv, zaptest.NewLogger(t))
	mirror.Store([]word.SavedLemma{{Lemma: "apple"}, {Lemma: "pear"}})
	w := newWorkflow(t, dict, mirror)
	require.NoError(t, w.Search(context.Background(), "run"))
	awaitStart(t, dict, "lookup")

	require.NoError(t, w.Save(context.Background()))
	awaitStart(t, dict, "save")

	got, ok := mirror.Load()
	require.True(t, ok)
	assert.Equal(t, []word.SavedLemma{{Lemma: "apple"}, {Lemma: "pear"}}, got)
}

func TestDelete_RemovesExactMatchOnly(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "run"}, {Lemma: "Run"}, {Lemma: "walk"}}
	mirror := &recordingMirror{}
	w := newWorkflow(t, dict, mirror)
	require.NoError(t, w.LoadSaved(context.Background()))

	require.NoError(t, w.Delete(context.Background(), "run"))
	awaitStart(t, dict, "delete")

	want := []word.SavedLemma{{Lemma: "Run"}, {Lemma: "walk"}}
	assert.Equal(t, want, w.Snapshot().Saved)
	assert.Equal(t, want, mirror.last())
}

func TestDelete_BeforeLoadLeavesMirrorAlone(t *testing.T) {
	dict := newFakeDictionary()
	kv := storage.NewMemory()
	mirror := NewStorageMirror(kv, zaptest.NewLogger(t))
	mirror.Store([]word.SavedLemma{{Lemma: "apple"}, {Lemma: "pear"}})
	w := newWorkflow(t, dict, mirror)

	require.NoError(t, w.Delete(context.Background(), "apple"))
	awaitStart(t, dict, "delete")

	got, ok := mirror.Load()
	require.True(t, ok)
	assert.Equal(t, []word.SavedLemma{{Lemma: "apple"}, {Lemma: "pear"}}, got)
}

func TestDelete_ConcurrentWithSaveMirrorsFinalState(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "walk"}}
	dict.saveGate = make(chan struct{})
	dict.deleteGate = make(chan struct{})
	mirror := &recordingMirror{}
	w := newWorkflow(t, dict, mirror)
	require.NoError(t, w.LoadSaved(context.Background()))
	require.NoError(t, w.Search(context.Background(), "run"))
	awaitStart(t, dict, "lookup")

	errs := make(chan error, 2)
	go func() { errs <- w.Save(context.Background()) }()
	awaitStart(t, dict, "save")
	go func() { errs <- w.Delete(context.Background(), "walk") }()
	awaitStart(t, dict, "delete")

	close(dict.deleteGate)
	close(dict.saveGate)
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	assert.Equal(t, w.Snapshot().Saved, mirror.last())
	assert.Equal(t, "run", mirror.last()[0].Lemma)
	assert.Len(t, mirror.last(), 1)
}

func TestDelete_FailureKeepsEntry(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "run"}}
	dict.deleteErr = failed("delete word")
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.LoadSaved(context.Background()))

	require.ErrorIs(t, w.Delete(context.Background(), "run"), api.ErrRequestFailed)
	awaitStart(t, dict, "delete")

	snap := w.Snapshot()
	assert.Equal(t, []word.SavedLemma{{Lemma: "run"}}, snap.Saved)
	assert.Empty(t, snap.Deleting)
	assert.Equal(t, "Failed to delete word. Please try again.", snap.Notice.Text)
}

func TestDelete_SlotsAreKeyedPerWord(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "run"}, {Lemma: "walk"}}
	dict.deleteGate = make(chan struct{})
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.LoadSaved(context.Background()))

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, lemma := range []string{"run", "walk"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- w.Delete(context.Background(), lemma)
		}()
	}
	awaitStart(t, dict, "delete")
	awaitStart(t, dict, "delete")

	snap := w.Snapshot()
	assert.True(t, snap.Deleting["run"])
	assert.True(t, snap.Deleting["walk"])
	assert.ErrorIs(t, w.Delete(context.Background(), "run"), ErrBusy)

	close(dict.deleteGate)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, dict.deleteCalls.Load())
	assert.Empty(t, w.Snapshot().Saved)
}

func TestExpand_ConcurrentCallsShareOneFetch(t *testing.T) {
	dict := newFakeDictionary()
	dict.details["run"] = word.WordData{Word: "run", Definition: "move fast"}
	dict.detailsGate = make(chan struct{})
	w := newWorkflow(t, dict, nil)

	type result struct {
		data word.WordData
		err  error
	}
	results := make(chan result, 2)
	go func() {
		d, err := w.Expand(context.Background(), "run")
		results <- result{d, err}
	}()
	awaitStart(t, dict, "details")
	assert.True(t, w.Snapshot().Loading["run"])

	second := make(chan struct{})
	go func() {
		close(second)
		d, err := w.Expand(context.Background(), "run")
		results <- result{d, err}
	}()
	<-second
	// Give the second caller time to join the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(dict.detailsGate)

	for range 2 {
		r := <-results
		require.NoError(t, r.err)
		assert.Equal(t, "move fast", r.data.Definition)
	}
	assert.EqualValues(t, 1, dict.detailsCalls.Load())

	w.Collapse("run")
	assert.False(t, w.Snapshot().Expanded["run"])
	d, err := w.Expand(context.Background(), "run")
	require.NoError(t, err)
	assert.Equal(t, "move fast", d.Definition)
	assert.EqualValues(t, 1, dict.detailsCalls.Load(), "re-expand must reuse the cached detail")
	assert.True(t, w.Snapshot().Expanded["run"])
}

func TestExpand_DeletedWhileLoadingIsNotCached(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "run"}}
	dict.detailsGate = make(chan struct{})
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.LoadSaved(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := w.Expand(context.Background(), "run")
		done <- err
	}()
	awaitStart(t, dict, "details")

	require.NoError(t, w.Delete(context.Background(), "run"))
	awaitStart(t, dict, "delete")
	close(dict.detailsGate)
	require.NoError(t, <-done)

	snap := w.Snapshot()
	assert.Empty(t, snap.Saved)
	_, cached := snap.Detail("run")
	assert.False(t, cached)
}

func TestExpand_FailureCollapses(t *testing.T) {
	dict := newFakeDictionary()
	dict.detailsErr = failed("load word details")
	w := newWorkflow(t, dict, nil)

	_, err := w.Expand(context.Background(), "run")
	require.ErrorIs(t, err, api.ErrRequestFailed)
	awaitStart(t, dict, "details")

	snap := w.Snapshot()
	assert.False(t, snap.Expanded["run"])
	assert.False(t, snap.Loading["run"])
	_, cached := snap.Detail("run")
	assert.False(t, cached)
}

func TestToggle(t *testing.T) {
	dict := newFakeDictionary()
	w := newWorkflow(t, dict, nil)

	require.NoError(t, w.Toggle(context.Background(), "run"))
	awaitStart(t, dict, "details")
	assert.True(t, w.Snapshot().Expanded["run"])

	require.NoError(t, w.Toggle(context.Background(), "run"))
	assert.False(t, w.Snapshot().Expanded["run"])
}

func TestLoadSaved_FallsBackToMirrorWhenOffline(t *testing.T) {
	dict := newFakeDictionary()
	dict.listErr = failed("load saved words")
	mirror := &recordingMirror{cached: []word.SavedLemma{{Lemma: "cached"}}, has: true}
	w := newWorkflow(t, dict, mirror)

	require.ErrorIs(t, w.LoadSaved(context.Background()), api.ErrRequestFailed)
	snap := w.Snapshot()
	assert.True(t, snap.Offline)
	assert.False(t, snap.SavedLoaded)
	assert.Equal(t, []word.SavedLemma{{Lemma: "cached"}}, snap.Saved)
	assert.Equal(t, OfflineNotice, snap.Notice.Text)

	dict.mu.Lock()
	dict.listErr = nil
	dict.saved = []word.SavedLemma{{Lemma: "fresh"}}
	dict.mu.Unlock()

	require.NoError(t, w.LoadSaved(context.Background()))
	snap = w.Snapshot()
	assert.False(t, snap.Offline)
	assert.Equal(t, []word.SavedLemma{{Lemma: "fresh"}}, snap.Saved)
	assert.Equal(t, snap.Saved, mirror.last())
}

func TestLoadSaved_SessionExpiredSkipsMirror(t *testing.T) {
	dict := newFakeDictionary()
	dict.listErr = api.ErrSessionExpired
	mirror := &recordingMirror{cached: []word.SavedLemma{{Lemma: "cached"}}, has: true}
	w := newWorkflow(t, dict, mirror)

	require.ErrorIs(t, w.LoadSaved(context.Background()), api.ErrSessionExpired)
	snap := w.Snapshot()
	assert.Empty(t, snap.Saved)
	assert.True(t, snap.SessionExpired)
}

func TestResumeSession_ClearsExpiredFlag(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "run"}}
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.LoadSaved(context.Background()))

	dict.lookupErr = api.ErrSessionExpired
	require.ErrorIs(t, w.Search(context.Background(), "walk"), api.ErrSessionExpired)
	awaitStart(t, dict, "lookup")
	require.True(t, w.Snapshot().SessionExpired)

	w.ResumeSession()
	snap := w.Snapshot()
	assert.False(t, snap.SessionExpired)
	assert.Nil(t, snap.Notice)
	assert.Equal(t, []word.SavedLemma{{Lemma: "run"}}, snap.Saved)
}

func TestFilter(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "Serendipity"}, {Lemma: "lurk"}}
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.LoadSaved(context.Background()))

	assert.Equal(t, []word.SavedLemma{{Lemma: "Serendipity"}}, w.Filter("DIP"))
	assert.Len(t, w.Filter(""), 2)
}

func TestSnapshot_IsACopy(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "run"}}
	w := newWorkflow(t, dict, nil)
	require.NoError(t, w.LoadSaved(context.Background()))

	snap := w.Snapshot()
	snap.Saved[0].Lemma = "mutated"
	snap.Expanded["x"] = true
	assert.Equal(t, "run", w.Snapshot().Saved[0].Lemma)
	assert.Empty(t, w.Snapshot().Expanded)
}

func TestReset_ClearsStateAndMirror(t *testing.T) {
	dict := newFakeDictionary()
	dict.saved = []word.SavedLemma{{Lemma: "run"}}
	kv := storage.NewMemory()
	mirror := NewStorageMirror(kv, zaptest.NewLogger(t))
	w := newWorkflow(t, dict, mirror)
	require.NoError(t, w.LoadSaved(context.Background()))

	got, ok := mirror.Load()
	require.True(t, ok)
	assert.Equal(t, []word.SavedLemma{{Lemma: "run"}}, got)

	w.Reset()
	assert.Empty(t, w.Snapshot().Saved)
	_, ok = mirror.Load()
	assert.False(t, ok)
}

func TestStorageMirror_CorruptDataIsAbsent(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(storage.KeySavedWords, "not json"))
	_, ok := NewStorageMirror(kv, zaptest.NewLogger(t)).Load()
	assert.False(t, ok)
}

func TestStorageMirror_EmptyCollectionRoundTrips(t *testing.T) {
	m := NewStorageMirror(storage.NewMemory(), nil)
	m.Store([]word.SavedLemma{})
	got, ok := m.Load()
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestFailureNoticeForMissingCredential(t *testing.T) {
	dict := newFakeDictionary()
	dict.listErr = api.ErrAuthenticationRequired
	w := newWorkflow(t, dict, nil)

	err := w.LoadSaved(context.Background())
	assert.True(t, errors.Is(err, api.ErrAuthenticationRequired))
	assert.Equal(t, LoginRequiredNotice, w.Snapshot().Notice.Text)
}
