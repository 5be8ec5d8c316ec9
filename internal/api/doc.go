// Package api provides the HTTP client for the Berk Tools backend.
//
// # Endpoints
//
//   - POST   /auth/sign-in             SignIn (no Authorization header)
//   - GET    /auth/me                  Me
//   - POST   /etymodictionary/look-up  Lookup
//   - GET    /etymodictionary/saved    ListSaved
//   - GET    /etymodictionary/lemma    LoadDetails (?lemma=)
//   - POST   /etymodictionary/save     Save
//   - DELETE /etymodictionary/lemma    Delete (?lemma=)
//
// Every request carries Accept, User-Agent and a fresh X-Request-ID. The
// request id is attached to the zap fields logged for that call.
//
// # Authentication
//
// The client reads the header value from an auth.Store on every call. When
// the store is empty, authenticated operations return
// ErrAuthenticationRequired without touching the network. A 401 on an
// authenticated call clears the store and returns ErrSessionExpired.
//
// # Errors
//
// Everything else that goes wrong (transport failure, non-2xx status,
// undecodable body) is a *RequestError, which matches ErrRequestFailed under
// errors.Is. RequestError.Message holds the server's detail/message/error
// field when one was sent.
//
// Lookup and LoadDetails run the payload through word.ToWordData, so callers
// only ever see normalised word.WordData values.
package api
