// Package app is the composition root for berk.
//
// Build reads the config file and turns it into the running pieces:
//
//	config.Load ─> logging.New ─> storage.Open ─> auth.NewStore
//	            ─> api.NewClient ─> workflow.New(client, storage mirror)
//
// The TUI (Run) and every non-interactive command share the same Deps, so a
// credential stored by `berk login` is the one the TUI starts with.
//
// Fatal errors (returned from Build): an unreadable or invalid config file,
// an unknown auth scheme, a storage file that cannot be opened, and a
// malformed backend URL. Backend failures are never fatal here; they surface
// through the workflow as notices.
package app
