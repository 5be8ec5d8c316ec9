package word

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldKey normalises s for caseless comparison. A Caser is stateful, so each
// call gets its own.
func foldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// SameLemma reports whether a and b name the same word ignoring case.
func SameLemma(a, b string) bool {
	return foldKey(a) == foldKey(b)
}

// ContainsLemma reports whether any saved entry matches w ignoring case.
func ContainsLemma(saved []SavedLemma, w string) bool {
	key := foldKey(w)
	for _, s := range saved {
		if foldKey(s.Lemma) == key {
			return true
		}
	}
	return false
}

// FilterSaved keeps entries whose lemma contains query ignoring case. A blank
// query keeps everything.
func FilterSaved(saved []SavedLemma, query string) []SavedLemma {
	needle := foldKey(query)
	out := make([]SavedLemma, 0, len(saved))
	for _, s := range saved {
		if needle == "" || strings.Contains(foldKey(s.Lemma), needle) {
			out = append(out, s)
		}
	}
	return out
}
