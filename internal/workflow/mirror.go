package workflow

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/berktools/berk/internal/logging"
	"github.com/berktools/berk/internal/storage"
	"github.com/berktools/berk/internal/word"
)

// Mirror keeps a local copy of the saved collection. It is read only when
// the backend cannot be reached at startup.
type Mirror interface {
	Load() ([]word.SavedLemma, bool)
	Store(saved []word.SavedLemma)
}

var _ Mirror = (*StorageMirror)(nil)

// StorageMirror persists the saved collection as JSON under
// storage.KeySavedWords.
type StorageMirror struct {
	kv  storage.Storage
	log *zap.Logger
}

// NewStorageMirror returns a mirror backed by kv.
func NewStorageMirror(kv storage.Storage, logger *zap.Logger) *StorageMirror {
	return &StorageMirror{kv: kv, log: logging.OrNop(logger)}
}

// Load returns the mirrored collection. Missing or unreadable data reports false.
func (m *StorageMirror) Load() ([]word.SavedLemma, bool) {
	raw, ok, err := m.kv.Get(storage.KeySavedWords)
	if err != nil {
		m.log.Warn("read saved words mirror", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var saved []word.SavedLemma
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		m.log.Warn("decode saved words mirror", zap.Error(err))
		return nil, false
	}
	return saved, true
}

// Store writes saved. A nil slice removes the mirror.
func (m *StorageMirror) Store(saved []word.SavedLemma) {
	if saved == nil {
		if err := m.kv.Remove(storage.KeySavedWords); err != nil {
			m.log.Warn("clear saved words mirror", zap.Error(err))
		}
		return
	}
	data, err := json.Marshal(saved)
	if err != nil {
		m.log.Warn("encode saved words mirror", zap.Error(err))
		return
	}
	if err := m.kv.Set(storage.KeySavedWords, string(data)); err != nil {
		m.log.Warn("write saved words mirror", zap.Error(err))
	}
}

type nopMirror struct{}

func (nopMirror) Load() ([]word.SavedLemma, bool) { return nil, false }
func (nopMirror) Store([]word.SavedLemma)          {}
