package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthenticationRequired means no credential is stored; no request was sent.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrSessionExpired means the backend rejected the credential. The store
	// has already been cleared when this is returned.
	ErrSessionExpired = errors.New("session expired, please login again")
	// ErrInvalidCredentials is returned by SignIn on 401.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRequestFailed matches every *RequestError.
	ErrRequestFailed = errors.New("request failed")
)

// RequestError describes a transport failure, a non-2xx answer, or an
// undecodable body. Status is 0 when no response was received.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(" failed")
	if e.Status > 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is reports ErrRequestFailed as a match so callers can classify with errors.Is.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// serverMessage pulls a human-readable message out of an error body.
func serverMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
			for _, key := range []string{"detail", "message", "error"} {
				if msg, ok := payload[key].(string); ok && strings.TrimSpace(msg) != "" {
					return strings.TrimSpace(msg)
				}
			}
		} else {
			if runes := []rune(trimmed); len(runes) > maxMessageLen {
				trimmed = string(runes[:maxMessageLen]) + "…"
			}
			return trimmed
		}
	}
	return http.StatusText(status)
}

const maxMessageLen = 200
