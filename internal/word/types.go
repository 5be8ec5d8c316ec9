package word

import (
	"time"
)

// WordData is the view-model for a looked-up or saved word.
type WordData struct {
	Word              string         `json:"word"`
	Definition        string         `json:"definition"`
	ExampleSentences  []string       `json:"exampleSentences"`
	TurkishEquivalent []string       `json:"turkishEquivalent"`
	Etymology         string         `json:"etymology"`
	EtymologyLink     string         `json:"etymologyLink,omitempty"`
	HowToRemember     string         `json:"howToRemember"`
	Pronunciation     *Pronunciation `json:"pronunciation,omitempty"`
}

// Pronunciation holds IPA and simplified spellings for UK and US speech.
type Pronunciation struct {
	IPAUK  string `json:"ipa_uk,omitempty"`
	IPAUS  string `json:"ipa_us,omitempty"`
	EasyUK string `json:"easy_uk,omitempty"`
	EasyUS string `json:"easy_us,omitempty"`
}

// SavedLemma is a saved word without details; details are fetched on expand.
type SavedLemma struct {
	Lemma     string `json:"lemma"`
	CreatedAt string `json:"created_at"`
}

// CreatedAtTime returns CreatedAt as time.Time when it parses.
func (s SavedLemma) CreatedAtTime() time.Time {
	return parseTime(s.CreatedAt)
}

// LookupResponse mirrors the backend payload returned by look-up and lemma.
// Every field is optional.
type LookupResponse struct {
	Target          string           `json:"target,omitempty"`
	Examples        []string         `json:"examples,omitempty"`
	Etymology       *EtymologySource `json:"etymology,omitempty"`
	MeaningEN       string           `json:"meaning_en,omitempty"`
	MeaningTR       []TurkishMeaning `json:"meaning_tr,omitempty"`
	Pronunciation   *Pronunciation   `json:"pronunciation,omitempty"`
	RememberInsight string           `json:"remember_insight,omitempty"`
}

// EtymologySource is the etymology block of LookupResponse.
type EtymologySource struct {
	Text   string `json:"text,omitempty"`
	Link   string `json:"link,omitempty"`
	Source string `json:"source,omitempty"`
}

// TurkishMeaning groups translations under one sense.
type TurkishMeaning struct {
	Sense string   `json:"sense,omitempty"`
	TR    []string `json:"tr,omitempty"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
