// Package storage persists small string values under fixed keys: the stored
// credential and the saved-words mirror. It plays the role browser local
// storage plays for a web client.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/berktools/berk/internal/config"
)

// Storage is a flat key/value store. Get reports ok=false for missing keys.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Keys used by berk.
const (
	KeyAuthToken       = "auth-token"
	KeyAuthCredentials = "auth-credentials"
	KeySavedWords      = "etymodictionary-words"
)

// ErrEmptyKey is returned when a blank key is used.
var ErrEmptyKey = errors.New("storage key is empty")

var (
	_ Storage = (*Memory)(nil)
	_ Storage = (*FileStorage)(nil)
	_ Storage = (*SQLStorage)(nil)
)

// Open returns the storage backend selected by cfg.StorageDriver.
func Open(cfg config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "", config.DriverFile:
		fs, err := NewFileStorage(cfg.StoragePath())
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.DriverSQLite:
		db, err := OpenSQL(cfg.StoragePath())
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

// Memory is an in-process Storage, used for tests and ephemeral sessions.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
