package lexicon_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"lyricsync/internal/lexicon"
)

func TestLoadSentiment(t *testing.T) {
	lex, err := lexicon.LoadSentiment("vader-lite-1")
	if err != nil {
		t.Fatalf("LoadSentiment: %v", err)
	}
	if lex.Version != "vader-lite-1" {
		t.Fatalf("unexpected version %q", lex.Version)
	}
	if lex.Valence["love"] <= 0 || lex.Valence["hate"] >= 0 {
		t.Fatalf("unexpected valences love=%v hate=%v", lex.Valence["love"], lex.Valence["hate"])
	}
	if lex.Boosters["very"] <= 0 || lex.Boosters["barely"] >= 0 {
		t.Fatal("expected positive and dampening boosters")
	}
	for _, word := range []string{"not", "never", "ain't", "shouldn't"} {
		if !lex.IsNegation(word) {
			t.Fatalf("%q should negate", word)
		}
	}
	if lex.IsNegation("know") {
		t.Fatal("know is not a negation")
	}
}

func TestLoadStopwords(t *testing.T) {
	full, err := lexicon.LoadStopwords("en-v1")
	if err != nil {
		t.Fatalf("LoadStopwords: %v", err)
	}
	for _, word := range []string{"the", "i'm", "yeah", "don't"} {
		if !full.Contains(word) {
			t.Fatalf("en-v1 should contain %q", word)
		}
	}
	minimal, err := lexicon.LoadStopwords("en-minimal")
	if err != nil {
		t.Fatalf("LoadStopwords: %v", err)
	}
	if minimal.Contains("yeah") || !minimal.Contains("the") {
		t.Fatal("unexpected en-minimal contents")
	}
	if minimal.Len() >= full.Len() {
		t.Fatalf("en-minimal (%d) should be smaller than en-v1 (%d)", minimal.Len(), full.Len())
	}
	none, err := lexicon.LoadStopwords(lexicon.StopwordsNone)
	if err != nil || none.Len() != 0 {
		t.Fatalf("none list: %v len=%d", err, none.Len())
	}
}

func TestUnknownVersions(t *testing.T) {
	if _, err := lexicon.LoadSentiment("nope"); err == nil {
		t.Fatal("expected error for unknown lexicon")
	}
	if _, err := lexicon.LoadStopwords("../etc"); err == nil {
		t.Fatal("expected error for path-like version")
	}
	if diff := cmp.Diff([]string{"en-minimal", "en-v1"}, lexicon.Versions("stopwords")); diff != "" {
		t.Fatalf("stopword versions mismatch (-want +got):\n%s", diff)
	}
}
