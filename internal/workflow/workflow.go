package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/berktools/berk/internal/api"
	"github.com/berktools/berk/internal/logging"
	"github.com/berktools/berk/internal/word"
)

var (
	// ErrBusy is returned when the slot an action needs is already in flight.
	// The call is ignored; nothing is queued.
	ErrBusy = errors.New("operation already in progress")
	// ErrNoResult is returned by Save when no search result is displayed.
	ErrNoResult = errors.New("no search result to save")
	// ErrAlreadySaved is returned by Save when the result is in the collection.
	ErrAlreadySaved = errors.New("word already saved")
)

// Notice texts shown to the user.
const (
	SavedNotice          = "Word saved successfully!"
	SessionExpiredNotice = "Session expired. Please login again."
	LoginRequiredNotice  = "Please login to continue."
	OfflineNotice        = "Backend unreachable. Showing saved words from your last session."
)

const (
	opSearch  = "search word"
	opSave    = "save word"
	opDelete  = "delete word"
	opList    = "load saved words"
	opDetails = "load word details"
)

// Workflow owns the saved collection and the per-action slots of the
// EtymoDictionary screen. It is safe for concurrent use.
type Workflow struct {
	dict   api.Dictionary
	mirror Mirror
	log    *zap.Logger
	now    func() time.Time
	group  singleflight.Group

	mu sync.Mutex
	st state

	// mirrorMu orders mirror writes. It is taken before mu, never while
	// holding it.
	mirrorMu sync.Mutex
}

// Option customises a Workflow.
type Option func(*Workflow)

// WithClock overrides the clock used to timestamp saved entries.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		if now != nil {
			w.now = now
		}
	}
}

// New returns a Workflow backed by dict. mirror may be nil.
func New(dict api.Dictionary, mirror Mirror, logger *zap.Logger, opts ...Option) *Workflow {
	if mirror == nil {
		mirror = nopMirror{}
	}
	w := &Workflow{
		dict:   dict,
		mirror: mirror,
		log:    logging.OrNop(logger).Named("workflow"),
		now:    time.Now,
		st:     newState(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Snapshot returns a copy of the current state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.snapshot()
}

// LoadSaved replaces the collection with the backend's list. When the backend
// cannot be reached and nothing has been loaded yet, the local mirror is used
// and the snapshot is marked Offline.
func (w *Workflow) LoadSaved(ctx context.Context) error {
	saved, err := w.dict.ListSaved(ctx)
	if err != nil {
		var fallback []word.SavedLemma
		var haveFallback bool
		if errors.Is(err, api.ErrRequestFailed) {
			fallback, haveFallback = w.mirror.Load()
		}

		w.mu.Lock()
		defer w.mu.Unlock()
		w.failLocked(opList, err)
		if haveFallback && !w.st.savedLoaded {
			w.st.saved = cloneSaved(fallback)
			w.st.offline = true
			w.st.notice = &Notice{Kind: NoticeError, Text: OfflineNotice}
			w.log.Info("using saved words mirror", zap.Int("count", len(fallback)))
		}
		return err
	}

	w.mu.Lock()
	w.st.saved = cloneSaved(saved)
	w.st.savedLoaded = true
	w.st.offline = false
	w.st.sessionExpired = false
	w.mu.Unlock()

	w.syncMirror()
	w.log.Debug("saved words loaded", zap.Int("count", len(saved)))
	return nil
}

// Search looks up query. A blank query is a no-op. A search already in
// flight makes the call return ErrBusy without issuing a request.
func (w *Workflow) Search(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}

	w.mu.Lock()
	if w.st.search == SearchSearching {
		w.mu.Unlock()
		return ErrBusy
	}
	w.st.search = SearchSearching
	w.st.query = q
	w.st.result = nil
	w.st.searchError = ""
	w.mu.Unlock()

	data, err := w.dict.Lookup(ctx, q)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.st.search = SearchFailed
		w.failLocked(opSearch, err)
		w.st.searchError = w.st.notice.Text
		return err
	}
	w.st.search = SearchResult
	w.st.result = &data
	return nil
}

// Save stores the displayed result. The collection is only extended after
// the backend confirms.
func (w *Workflow) Save(ctx context.Context) error {
	w.mu.Lock()
	if w.st.search != SearchResult || w.st.result == nil {
		w.mu.Unlock()
		return ErrNoResult
	}
	if w.st.saving {
		w.mu.Unlock()
		return ErrBusy
	}
	if word.ContainsLemma(w.st.saved, w.st.result.Word) {
		w.mu.Unlock()
		return ErrAlreadySaved
	}
	w.st.saving = true
	data := w.st.result.Clone()
	w.mu.Unlock()

	err := w.dict.Save(ctx, data)

	w.mu.Lock()
	w.st.saving = false
	if err != nil {
		w.failLocked(opSave, err)
		w.mu.Unlock()
		return err
	}
	w.st.saved = append(w.st.saved, word.SavedLemma{
		Lemma:     data.Word,
		CreatedAt: w.now().UTC().Format(time.RFC3339),
	})
	w.st.details[data.Word] = data
	w.st.notice = &Notice{Kind: NoticeSuccess, Text: SavedNotice}
	w.mu.Unlock()

	w.syncMirror()
	w.log.Info("word saved", zap.String("lemma", data.Word))
	return nil
}

// Delete removes lemma from the backend and then from the collection. Each
// lemma has its own slot: deleting "a" does not block deleting "b".
func (w *Workflow) Delete(ctx context.Context, lemma string) error {
	if strings.TrimSpace(lemma) == "" {
		return nil
	}

	w.mu.Lock()
	if _, busy := w.st.deleting[lemma]; busy {
		w.mu.Unlock()
		return ErrBusy
	}
	w.st.deleting[lemma] = struct{}{}
	w.mu.Unlock()

	err := w.dict.Delete(ctx, lemma)

	w.mu.Lock()
	delete(w.st.deleting, lemma)
	if err != nil {
		w.failLocked(opDelete, err)
		w.mu.Unlock()
		return err
	}
	kept := w.st.saved[:0:0]
	for _, item := range w.st.saved {
		if item.Lemma != lemma {
			kept = append(kept, item)
		}
	}
	w.st.saved = kept
	delete(w.st.details, lemma)
	delete(w.st.expanded, lemma)
	w.mu.Unlock()

	w.syncMirror()
	w.log.Info("word deleted", zap.String("lemma", lemma))
	return nil
}

// Expand marks lemma expanded and returns its detail, fetching it once.
// Concurrent calls for the same lemma share one request; later calls use
// the cache.
func (w *Workflow) Expand(ctx context.Context, lemma string) (word.WordData, error) {
	w.mu.Lock()
	w.st.expanded[lemma] = struct{}{}
	if d, ok := w.st.details[lemma]; ok {
		w.mu.Unlock()
		return d.Clone(), nil
	}
	w.st.loading[lemma] = struct{}{}
	w.mu.Unlock()

	v, err, _ := w.group.Do(lemma, func() (any, error) {
		w.mu.Lock()
		if d, ok := w.st.details[lemma]; ok {
			w.mu.Unlock()
			return d, nil
		}
		w.mu.Unlock()

		d, err := w.dict.LoadDetails(ctx, lemma)
		if err != nil {
			return nil, err
		}
		w.mu.Lock()
		if w.tracksLocked(lemma) {
			w.st.details[lemma] = d
		}
		w.mu.Unlock()
		return d, nil
	})

	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.st.loading, lemma)
	if err != nil {
		delete(w.st.expanded, lemma)
		w.failLocked(opDetails, err)
		return word.WordData{}, err
	}
	return v.(word.WordData).Clone(), nil
}

// Collapse hides lemma's detail. The cached detail is kept.
func (w *Workflow) Collapse(lemma string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.st.expanded, lemma)
}

// Toggle collapses lemma when expanded and expands it otherwise.
func (w *Workflow) Toggle(ctx context.Context, lemma string) error {
	w.mu.Lock()
	_, open := w.st.expanded[lemma]
	w.mu.Unlock()
	if open {
		w.Collapse(lemma)
		return nil
	}
	_, err := w.Expand(ctx, lemma)
	return err
}

// IsSaved reports whether text matches a saved lemma, ignoring case.
func (w *Workflow) IsSaved(text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return word.ContainsLemma(w.st.saved, text)
}

// Filter returns the saved entries whose lemma contains query, ignoring case.
func (w *Workflow) Filter(query string) []word.SavedLemma {
	w.mu.Lock()
	saved := cloneSaved(w.st.saved)
	w.mu.Unlock()
	return word.FilterSaved(saved, query)
}

// DismissNotice clears the current notice.
func (w *Workflow) DismissNotice() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.st.notice = nil
}

// ResumeSession clears the session-expired flag after a fresh sign-in. The
// collection and the cached details are kept.
func (w *Workflow) ResumeSession() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.st.sessionExpired {
		return
	}
	w.st.sessionExpired = false
	if n := w.st.notice; n != nil && (n.Text == SessionExpiredNotice || n.Text == LoginRequiredNotice) {
		w.st.notice = nil
	}
}

// Reset drops all state and the local mirror. Used on logout.
func (w *Workflow) Reset() {
	w.mirrorMu.Lock()
	defer w.mirrorMu.Unlock()
	w.mu.Lock()
	w.st = newState()
	w.mu.Unlock()
	w.mirror.Store(nil)
}

// syncMirror writes the current collection to the mirror. Nothing is written
// until the collection is known, so a mutation made before the first load
// cannot replace the mirror with a partial list.
func (w *Workflow) syncMirror() {
	w.mirrorMu.Lock()
	defer w.mirrorMu.Unlock()
	w.mu.Lock()
	if !w.st.savedLoaded && !w.st.offline {
		w.mu.Unlock()
		return
	}
	mirrored := mirrorCopy(w.st.saved)
	w.mu.Unlock()
	w.mirror.Store(mirrored)
}

// tracksLocked reports whether details for lemma may be cached. Once the
// collection is known, only lemmas still in it qualify. Callers hold w.mu.
func (w *Workflow) tracksLocked(lemma string) bool {
	if !w.st.savedLoaded && !w.st.offline {
		return true
	}
	for _, item := range w.st.saved {
		if item.Lemma == lemma {
			return true
		}
	}
	return false
}

// failLocked logs err and turns it into a notice. Callers hold w.mu.
func (w *Workflow) failLocked(op string, err error) {
	switch {
	case errors.Is(err, api.ErrSessionExpired):
		w.log.Info(op+": session expired", zap.Error(err))
		w.st.sessionExpired = true
		w.st.notice = &Notice{Kind: NoticeError, Text: SessionExpiredNotice}
	case errors.Is(err, api.ErrAuthenticationRequired):
		w.log.Info(op+": not signed in")
		w.st.sessionExpired = true
		w.st.notice = &Notice{Kind: NoticeError, Text: LoginRequiredNotice}
	default:
		w.log.Warn(op+" failed", zap.Error(err))
		w.st.notice = &Notice{Kind: NoticeError, Text: fmt.Sprintf("Failed to %s. Please try again.", op)}
	}
}

func mirrorCopy(items []word.SavedLemma) []word.SavedLemma {
	dup := make([]word.SavedLemma, len(items))
	copy(dup, items)
	return dup
}
