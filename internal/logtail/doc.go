// Package logtail reads the tail of berk's log file and turns its zap JSON
// records into one readable line each.
//
// Read keeps a ring buffer of the last N lines, so memory stays O(N) no
// matter how large the file has grown. A missing file is not an error.
//
// Parse decodes a record written by the production zap encoder (ts, level,
// logger, msg and any structured fields). Palette.Format renders it as
//
//	2025-10-08 21:01:05 INFO  [api] request finished method=GET status=200
//
// with fields sorted by key. DefaultPalette colors the level and dims the
// timestamp; PlainPalette emits bare text for pipes and tests.
package logtail
