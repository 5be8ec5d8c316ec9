package word

import (
	"testing"
	"time"
)

func TestSameLemma_IgnoresCase(t *testing.T) {
	if !SameLemma("Run", "run") {
		t.Fatalf("SameLemma(Run, run) = false, want true")
	}
	if !SameLemma(" ÇAY ", "çay") {
		t.Fatalf("SameLemma(ÇAY, çay) = false, want true")
	}
	if SameLemma("run", "ran") {
		t.Fatalf("SameLemma(run, ran) = true, want false")
	}
}

func TestContainsLemma(t *testing.T) {
	saved := []SavedLemma{{Lemma: "Run"}, {Lemma: "walk"}}
	if !ContainsLemma(saved, "run") {
		t.Fatalf("ContainsLemma(run) = false, want true")
	}
	if ContainsLemma(saved, "jog") {
		t.Fatalf("ContainsLemma(jog) = true, want false")
	}
	if ContainsLemma(nil, "run") {
		t.Fatalf("ContainsLemma(nil) = true, want false")
	}
}

func TestFilterSaved(t *testing.T) {
	saved := []SavedLemma{{Lemma: "Serendipity"}, {Lemma: "sere"}, {Lemma: "lurk"}}

	got := FilterSaved(saved, "SER")
	if len(got) != 2 || got[0].Lemma != "Serendipity" || got[1].Lemma != "sere" {
		t.Fatalf("FilterSaved(SER) = %#v, want Serendipity and sere", got)
	}
	if all := FilterSaved(saved, "  "); len(all) != 3 {
		t.Fatalf("FilterSaved(blank) returned %d entries, want 3", len(all))
	}
	if none := FilterSaved(saved, "zzz"); len(none) != 0 {
		t.Fatalf("FilterSaved(zzz) = %#v, want empty", none)
	}
}

func TestSavedLemma_CreatedAtTime(t *testing.T) {
	s := SavedLemma{CreatedAt: "2025-03-01T10:20:30Z"}
	want := time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC)
	if got := s.CreatedAtTime(); !got.Equal(want) {
		t.Fatalf("CreatedAtTime = %v, want %v", got, want)
	}
	if got := (SavedLemma{CreatedAt: "2025-03-01T10:20:30.123456"}).CreatedAtTime(); got.IsZero() {
		t.Fatalf("CreatedAtTime should parse naive microsecond timestamps")
	}
	if got := (SavedLemma{CreatedAt: "yesterday"}).CreatedAtTime(); !got.IsZero() {
		t.Fatalf("CreatedAtTime(garbage) = %v, want zero", got)
	}
}
