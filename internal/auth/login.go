package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/berktools/berk/internal/storage"
)

// ErrMissingCredentials is returned when the username or password is blank.
var ErrMissingCredentials = errors.New("please enter both username and password")

// Signer exchanges a username/password for a bearer token.
type Signer interface {
	SignIn(ctx context.Context, username, password string) (string, error)
}

// LoginResult reports the outcome of a sign-in attempt.
type LoginResult struct {
	OK       bool
	Username string
	Err      error
}

// NewStore returns the store for scheme ("bearer" or "basic").
func NewStore(scheme string, kv storage.Storage, logger *zap.Logger) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("auth store requires storage")
	}
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "bearer":
		return NewTokenStore(kv, logger), nil
	case "basic":
		return NewBasicStore(kv, logger), nil
	default:
		return nil, fmt.Errorf("unknown auth scheme %q", scheme)
	}
}

// Login signs in and persists the resulting credential in store. Bearer
// stores exchange the pair through signer; basic stores keep the pair itself.
func Login(ctx context.Context, signer Signer, store Store, username, password string) LoginResult {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return LoginResult{Err: ErrMissingCredentials}
	}

	switch s := store.(type) {
	case *TokenStore:
		if signer == nil {
			return LoginResult{Err: fmt.Errorf("bearer sign-in requires a signer")}
		}
		token, err := signer.SignIn(ctx, username, password)
		if err != nil {
			return LoginResult{Err: err}
		}
		if strings.TrimSpace(token) == "" {
			return LoginResult{Err: fmt.Errorf("sign in returned an empty token")}
		}
		s.SetToken(token)
	case *BasicStore:
		s.SetCredentials(Credentials{Username: username, Password: password})
	default:
		return LoginResult{Err: fmt.Errorf("unsupported auth store %T", store)}
	}

	return LoginResult{OK: true, Username: username}
}

// Logout forgets the stored credential.
func Logout(store Store) {
	if store != nil {
		store.Clear()
	}
}
