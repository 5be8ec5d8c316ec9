package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/berktools/berk/internal/logging"
	"github.com/berktools/berk/internal/storage"
)

// Store is the capability the API client needs from a credential store.
type Store interface {
	AuthHeader() (string, bool)
	IsAuthenticated() bool
	Clear()
}

// Ensure both schemes implement Store at compile time.
var (
	_ Store = (*TokenStore)(nil)
	_ Store = (*BasicStore)(nil)
)

// TokenStore persists a bearer token.
type TokenStore struct {
	kv  storage.Storage
	log *zap.Logger
}

// NewTokenStore returns a bearer-token store backed by kv.
func NewTokenStore(kv storage.Storage, logger *zap.Logger) *TokenStore {
	return &TokenStore{kv: kv, log: logging.OrNop(logger)}
}

// Token returns the stored token. Read failures count as absent.
func (s *TokenStore) Token() (string, bool) {
	v, ok, err := s.kv.Get(storage.KeyAuthToken)
	if err != nil {
		s.log.Warn("read auth token", zap.Error(err))
		return "", false
	}
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SetToken stores token. Write failures are logged and dropped.
func (s *TokenStore) SetToken(token string) {
	if err := s.kv.Set(storage.KeyAuthToken, strings.TrimSpace(token)); err != nil {
		s.log.Warn("store auth token", zap.Error(err))
	}
}

// Clear removes the token.
func (s *TokenStore) Clear() {
	if err := s.kv.Remove(storage.KeyAuthToken); err != nil {
		s.log.Warn("clear auth token", zap.Error(err))
	}
}

// IsAuthenticated reports whether a token is stored.
func (s *TokenStore) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// AuthHeader returns "Bearer <token>".
func (s *TokenStore) AuthHeader() (string, bool) {
	token, ok := s.Token()
	if !ok {
		return "", false
	}
	return "Bearer " + token, true
}

// Credentials is a username/password pair for basic auth.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BasicStore persists a username/password pair.
type BasicStore struct {
	kv  storage.Storage
	log *zap.Logger
}

// NewBasicStore returns a basic-auth store backed by kv.
func NewBasicStore(kv storage.Storage, logger *zap.Logger) *BasicStore {
	return &BasicStore{kv: kv, log: logging.OrNop(logger)}
}

// Credentials returns the stored pair. Read or decode failures count as absent.
func (s *BasicStore) Credentials() (Credentials, bool) {
	raw, ok, err := s.kv.Get(storage.KeyAuthCredentials)
	if err != nil {
		s.log.Warn("read auth credentials", zap.Error(err))
		return Credentials{}, false
	}
	if !ok {
		return Credentials{}, false
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		s.log.Warn("decode auth credentials", zap.Error(err))
		return Credentials{}, false
	}
	if creds.Username == "" {
		return Credentials{}, false
	}
	return creds, true
}

// SetCredentials stores creds. Write failures are logged and dropped.
func (s *BasicStore) SetCredentials(creds Credentials) {
	data, err := json.Marshal(creds)
	if err != nil {
		s.log.Warn("encode auth credentials", zap.Error(err))
		return
	}
	if err := s.kv.Set(storage.KeyAuthCredentials, string(data)); err != nil {
		s.log.Warn("store auth credentials", zap.Error(err))
	}
}

// Clear removes the stored pair.
func (s *BasicStore) Clear() {
	if err := s.kv.Remove(storage.KeyAuthCredentials); err != nil {
		s.log.Warn("clear auth credentials", zap.Error(err))
	}
}

// IsAuthenticated reports whether a credential pair is stored.
func (s *BasicStore) IsAuthenticated() bool {
	_, ok := s.Credentials()
	return ok
}

// Username returns the stored username, or "" when signed out.
func (s *BasicStore) Username() string {
	creds, _ := s.Credentials()
	return creds.Username
}

// AuthHeader returns "Basic base64(user:pass)".
func (s *BasicStore) AuthHeader() (string, bool) {
	creds, ok := s.Credentials()
	if !ok {
		return "", false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
	return "Basic " + encoded, true
}
