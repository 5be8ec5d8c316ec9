// Package word defines the EtymoDictionary data model and the transformer
// from backend payloads to it.
//
// # Types
//
//   - LookupResponse: the raw look-up/lemma payload, every field optional
//   - WordData: the flat view-model presenters render
//   - SavedLemma: a saved word without details
//
// # Transformation
//
// ToWordData is a pure, total function. Missing meaning_tr, examples,
// etymology or pronunciation blocks yield empty strings and empty (non-nil)
// slices. Each meaning_tr entry becomes one line, "<sense>: a, b" or just
// "a, b" when the sense is blank.
//
// Pronunciation is available two ways: folded into Etymology as a trailing
// "Pronunciation: UK: ... | US: ..." line, and as the dedicated Pronunciation
// field. Presenters pick one with WordData.EtymologyText.
//
// # Lemma comparison
//
// Lemmas are compared with Unicode case folding (golang.org/x/text/cases) so
// that "Run" and "run" are the same saved word.
package word
