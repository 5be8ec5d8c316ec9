package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/berktools/berk/internal/auth"
	"github.com/berktools/berk/internal/logging"
)

// Ensure Client satisfies the interfaces its consumers depend on.
var (
	_ Dictionary  = (*Client)(nil)
	_ auth.Signer = (*Client)(nil)
)

// Client talks to the Berk Tools backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	store     auth.Store
	userAgent string
	log       *zap.Logger
	requestID func() string
}

const (
	defaultBaseURL   = "https://api.example.com"
	defaultUserAgent = "berk/dev"
	defaultTimeout   = 15 * time.Second
	maxErrorBody     = 64 << 10
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.log = logging.OrNop(logger) }
}

// WithVersion sets the version reported in User-Agent.
func WithVersion(version string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(version); v != "" {
			c.userAgent = "berk/" + v
		}
	}
}

// NewClient builds a Client for baseURL that authenticates with store.
func NewClient(baseURL string, store auth.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("api client requires an auth store")
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		store:     store,
		userAgent: defaultUserAgent,
		log:       zap.NewNop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Store returns the credential store the client authenticates with.
func (c *Client) Store() auth.Store {
	return c.store
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	authed bool
}

func (c *Client) do(ctx context.Context, req call, dest any) error {
	var header string
	if req.authed {
		h, ok := c.store.AuthHeader()
		if !ok {
			return ErrAuthenticationRequired
		}
		header = h
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return &RequestError{Op: req.op, Message: "encode request", Err: err}
		}
		body = bytes.NewReader(data)
	}

	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + req.path
	if len(req.query) > 0 {
		reqURL.RawQuery = req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, reqURL.String(), body)
	if err != nil {
		return &RequestError{Op: req.op, Message: "create request", Err: err}
	}
	id := c.requestID()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", id)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if header != "" {
		httpReq.Header.Set("Authorization", header)
	}

	log := c.log.With(
		zap.String("request_id", id),
		zap.String("method", req.method),
		zap.String("path", req.path),
	)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return &RequestError{Op: req.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized && req.authed {
		log.Info("credential rejected, clearing")
		c.store.Clear()
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := serverMessage(resp.StatusCode, data)
		log.Warn("request rejected", zap.String("message", msg))
		return &RequestError{Op: req.op, Status: resp.StatusCode, Message: msg}
	}

	log.Debug("request complete")
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return &RequestError{Op: req.op, Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse backend_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
