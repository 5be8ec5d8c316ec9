package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/berktools/berk/internal/config"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()

	if _, ok, err := s.Get(KeyAuthToken); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	if err := s.Set(KeyAuthToken, "tok-1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(KeySavedWords, `[{"lemma":"run"}]`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(KeyAuthToken, "tok-2"); err != nil {
		t.Fatalf("Set overwrite returned error: %v", err)
	}

	got, ok, err := s.Get(KeyAuthToken)
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want stored value", ok, err)
	}
	if got != "tok-2" {
		t.Fatalf("Get = %q, want %q", got, "tok-2")
	}

	if err := s.Remove(KeyAuthToken); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, ok, _ := s.Get(KeyAuthToken); ok {
		t.Fatalf("Get after Remove reported ok=true")
	}
	if err := s.Remove(KeyAuthToken); err != nil {
		t.Fatalf("Remove of missing key returned error: %v", err)
	}

	words, ok, err := s.Get(KeySavedWords)
	if err != nil || !ok || words != `[{"lemma":"run"}]` {
		t.Fatalf("Get(%s) = %q ok=%v err=%v, want untouched value", KeySavedWords, words, ok, err)
	}

	if err := s.Set("  ", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Set(blank) error = %v, want ErrEmptyKey", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseStorage(t, NewMemory())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.toml")
	fs, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	exerciseStorage(t, fs)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("storage file mode = %v, want 0600", perm)
	}

	reopened, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	if v, ok, err := reopened.Get(KeySavedWords); err != nil || !ok || v == "" {
		t.Fatalf("reopened Get = %q ok=%v err=%v, want persisted value", v, ok, err)
	}
}

func TestFileStorage_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	fs, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	if _, _, err := fs.Get(KeyAuthToken); err == nil {
		t.Fatalf("Get on corrupt file returned nil error")
	}
}

func TestSQLStorage(t *testing.T) {
	s, err := OpenSQL(":memory:")
	if err != nil {
		t.Fatalf("OpenSQL returned error: %v", err)
	}
	defer s.Close()
	exerciseStorage(t, s)
}

func TestOpen_SelectsDriver(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(config.Config{DataDir: dir, StorageDriver: config.DriverFile})
	if err != nil {
		t.Fatalf("Open(file) returned error: %v", err)
	}
	if _, ok := s.(*FileStorage); !ok {
		t.Fatalf("Open(file) = %T, want *FileStorage", s)
	}

	s, err = Open(config.Config{DataDir: dir, StorageDriver: config.DriverSQLite})
	if err != nil {
		t.Fatalf("Open(sqlite) returned error: %v", err)
	}
	sqlStore, ok := s.(*SQLStorage)
	if !ok {
		t.Fatalf("Open(sqlite) = %T, want *SQLStorage", s)
	}
	_ = sqlStore.Close()

	if _, err := Open(config.Config{DataDir: dir, StorageDriver: "redis"}); err == nil {
		t.Fatalf("Open(redis) returned nil error")
	}
}
