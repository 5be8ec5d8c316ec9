// Package auth stores the credential berk sends to the backend.
//
// Two schemes exist and a deployment picks one through config:
//
//   - bearer: TokenStore keeps the token returned by POST /auth/sign-in and
//     sends "Authorization: Bearer <token>"
//   - basic: BasicStore keeps the username/password pair and sends
//     "Authorization: Basic base64(user:pass)"
//
// Both satisfy Store, the only thing the API client depends on.
//
// Reads never fail: a storage error or a corrupt value is logged and treated
// as "signed out". Writes are best effort. A failed write silently leaves the
// next run signed out.
//
// IsAuthenticated only checks that a credential is present. Expiry is
// discovered when the backend answers 401, at which point the API client
// calls Clear.
//
// Login is the credential-entry flow. It validates input, performs the
// scheme-specific exchange and returns a LoginResult instead of prompting.
package auth
