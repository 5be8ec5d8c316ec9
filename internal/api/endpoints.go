package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/berktools/berk/internal/word"
)

// Dictionary is the set of EtymoDictionary operations the workflow uses.
type Dictionary interface {
	Lookup(ctx context.Context, query string) (word.WordData, error)
	ListSaved(ctx context.Context) ([]word.SavedLemma, error)
	LoadDetails(ctx context.Context, lemma string) (word.WordData, error)
	Save(ctx context.Context, data word.WordData) error
	Delete(ctx context.Context, lemma string) error
}

// SignIn exchanges a username and password for a bearer token. It never
// sends an Authorization header.
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	var payload signInResponse
	err := c.do(ctx, call{
		op:     "sign in",
		method: http.MethodPost,
		path:   "/auth/sign-in",
		body:   signInRequest{Username: username, Password: password},
	}, &payload)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusUnauthorized {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return payload.Token, nil
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, call{
		op:     "fetch user",
		method: http.MethodGet,
		path:   "/auth/me",
		authed: true,
	}, &user)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Lookup searches the backend for query and returns the normalised result.
func (c *Client) Lookup(ctx context.Context, query string) (word.WordData, error) {
	var raw *word.LookupResponse
	err := c.do(ctx, call{
		op:     "search word",
		method: http.MethodPost,
		path:   "/etymodictionary/look-up",
		body:   lookupRequest{Message: query},
		authed: true,
	}, &raw)
	if err != nil {
		return word.WordData{}, err
	}
	return word.ToWordData(raw, query), nil
}

// ListSaved returns the saved lemmas. Entries without a lemma are dropped.
func (c *Client) ListSaved(ctx context.Context) ([]word.SavedLemma, error) {
	var raw []word.SavedLemma
	err := c.do(ctx, call{
		op:     "load saved words",
		method: http.MethodGet,
		path:   "/etymodictionary/saved",
		authed: true,
	}, &raw)
	if err != nil {
		return nil, err
	}
	saved := make([]word.SavedLemma, 0, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item.Lemma) == "" {
			continue
		}
		saved = append(saved, item)
	}
	return saved, nil
}

// LoadDetails fetches the full record for a saved lemma.
func (c *Client) LoadDetails(ctx context.Context, lemma string) (word.WordData, error) {
	var raw *word.LookupResponse
	err := c.do(ctx, call{
		op:     "load word details",
		method: http.MethodGet,
		path:   "/etymodictionary/lemma",
		query:  url.Values{"lemma": {lemma}},
		authed: true,
	}, &raw)
	if err != nil {
		return word.WordData{}, err
	}
	return word.ToWordData(raw, lemma), nil
}

// Save stores data.Word on the backend. The response body is ignored.
func (c *Client) Save(ctx context.Context, data word.WordData) error {
	return c.do(ctx, call{
		op:     "save word",
		method: http.MethodPost,
		path:   "/etymodictionary/save",
		body:   saveRequest{Lemma: data.Word},
		authed: true,
	}, nil)
}

// Delete removes a saved lemma.
func (c *Client) Delete(ctx context.Context, lemma string) error {
	return c.do(ctx, call{
		op:     "delete word",
		method: http.MethodDelete,
		path:   "/etymodictionary/lemma",
		query:  url.Values{"lemma": {lemma}},
		authed: true,
	}, nil)
}
