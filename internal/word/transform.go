package word

import (
	"strings"
)

const pronunciationLabel = "Pronunciation: "

// ToWordData maps a backend payload onto WordData. It is total: nil input and
// missing sub-objects degrade to empty values. fallback is used as the word
// when the payload carries no target.
func ToWordData(raw *LookupResponse, fallback string) WordData {
	if raw == nil {
		raw = &LookupResponse{}
	}

	out := WordData{
		Word:              raw.Target,
		Definition:        raw.MeaningEN,
		ExampleSentences:  cloneStrings(raw.Examples),
		TurkishEquivalent: TurkishLines(raw.MeaningTR),
		HowToRemember:     raw.RememberInsight,
	}
	if out.Word == "" {
		out.Word = fallback
	}

	if raw.Etymology != nil {
		out.Etymology = raw.Etymology.Text
		out.EtymologyLink = raw.Etymology.Link
	}
	if raw.Pronunciation != nil {
		p := *raw.Pronunciation
		out.Pronunciation = &p
		out.Etymology += "\n\n" + pronunciationLabel + PronunciationSummary(&p)
	}
	return out
}

// TurkishLines renders each sense group as "<sense>: a, b", or just the
// joined translations when the sense is blank.
func TurkishLines(meanings []TurkishMeaning) []string {
	lines := make([]string, 0, len(meanings))
	for _, m := range meanings {
		joined := strings.Join(m.TR, ", ")
		if m.Sense != "" {
			lines = append(lines, m.Sense+": "+joined)
			continue
		}
		lines = append(lines, joined)
	}
	return lines
}

// PronunciationSummary formats "UK: <easy or ipa> | US: <easy or ipa>".
func PronunciationSummary(p *Pronunciation) string {
	if p == nil {
		return ""
	}
	return "UK: " + firstNonEmpty(p.EasyUK, p.IPAUK) + " | US: " + firstNonEmpty(p.EasyUS, p.IPAUS)
}

// EtymologyText returns the etymology for display. With fold=false the
// pronunciation summary appended by ToWordData is stripped, for presenters
// that show Pronunciation as its own field.
func (w WordData) EtymologyText(fold bool) string {
	if fold || w.Pronunciation == nil {
		return w.Etymology
	}
	return strings.TrimSuffix(w.Etymology, "\n\n"+pronunciationLabel+PronunciationSummary(w.Pronunciation))
}

// Clone returns a deep copy.
func (w WordData) Clone() WordData {
	dup := w
	dup.ExampleSentences = cloneStrings(w.ExampleSentences)
	dup.TurkishEquivalent = cloneStrings(w.TurkishEquivalent)
	if w.Pronunciation != nil {
		p := *w.Pronunciation
		dup.Pronunciation = &p
	}
	return dup
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
