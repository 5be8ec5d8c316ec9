package workflow

import (
	"github.com/berktools/berk/internal/word"
)

// SearchState is the phase of the search slot.
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchSearching
	SearchResult
	SearchFailed
)

func (s SearchState) String() string {
	switch s {
	case SearchSearching:
		return "searching"
	case SearchResult:
		return "result"
	case SearchFailed:
		return "failed"
	default:
		return "idle"
	}
}

// NoticeKind distinguishes success from error notices.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient user-facing message.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Snapshot is a copy of the workflow state for presenters. Mutating it has
// no effect on the workflow.
type Snapshot struct {
	Query       string
	Search      SearchState
	Result      *word.WordData
	SearchError string

	Saving   bool
	Deleting map[string]bool
	Expanded map[string]bool
	Loading  map[string]bool
	Details  map[string]word.WordData

	Saved       []word.SavedLemma
	SavedLoaded bool

	Notice         *Notice
	SessionExpired bool
	// Offline is set when Saved came from the local mirror because the
	// backend could not be reached.
	Offline bool
}

// HasResult reports whether a search result is displayed.
func (s Snapshot) HasResult() bool {
	return s.Search == SearchResult && s.Result != nil
}

// ResultSaved reports whether the displayed result is already saved.
func (s Snapshot) ResultSaved() bool {
	return s.HasResult() && word.ContainsLemma(s.Saved, s.Result.Word)
}

// CanSave reports whether the save action is available.
func (s Snapshot) CanSave() bool {
	return s.HasResult() && !s.Saving && !s.ResultSaved()
}

// Detail returns the cached detail for lemma.
func (s Snapshot) Detail(lemma string) (word.WordData, bool) {
	d, ok := s.Details[lemma]
	return d, ok
}

// state is the mutable workflow state guarded by Workflow.mu.
type state struct {
	query       string
	search      SearchState
	result      *word.WordData
	searchError string

	saving   bool
	deleting map[string]struct{}
	expanded map[string]struct{}
	loading  map[string]struct{}
	details  map[string]word.WordData

	saved       []word.SavedLemma
	savedLoaded bool

	notice         *Notice
	sessionExpired bool
	offline        bool
}

func newState() state {
	return state{
		deleting: make(map[string]struct{}),
		expanded: make(map[string]struct{}),
		loading:  make(map[string]struct{}),
		details:  make(map[string]word.WordData),
	}
}

func (s *state) snapshot() Snapshot {
	snap := Snapshot{
		Query:          s.query,
		Search:         s.search,
		SearchError:    s.searchError,
		Saving:         s.saving,
		Deleting:       keySet(s.deleting),
		Expanded:       keySet(s.expanded),
		Loading:        keySet(s.loading),
		Details:        make(map[string]word.WordData, len(s.details)),
		Saved:          cloneSaved(s.saved),
		SavedLoaded:    s.savedLoaded,
		SessionExpired: s.sessionExpired,
		Offline:        s.offline,
	}
	if s.result != nil {
		r := s.result.Clone()
		snap.Result = &r
	}
	for k, v := range s.details {
		snap.Details[k] = v.Clone()
	}
	if s.notice != nil {
		n := *s.notice
		snap.Notice = &n
	}
	return snap
}

func keySet(in map[string]struct{}) map[string]bool {
	out := make(map[string]bool, len(in))
	for k := range in {
		out[k] = true
	}
	return out
}

func cloneSaved(items []word.SavedLemma) []word.SavedLemma {
	if len(items) == 0 {
		return nil
	}
	dup := make([]word.SavedLemma, len(items))
	copy(dup, items)
	return dup
}
