package metrics

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lyricsync/internal/lexicon"
	"lyricsync/internal/wordfreq"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	lex, err := lexicon.LoadSentiment("vader-lite-1")
	if err != nil {
		t.Fatalf("LoadSentiment: %v", err)
	}
	return New(lex, nil)
}

func TestComputeEmptyText(t *testing.T) {
	engine := newTestEngine(t)
	for _, text := range []string{"", "   \n\t", "...!?", "\n\n"} {
		rec := engine.Compute(text)
		if rec.Readability != 0 || rec.Sentiment != 0 || rec.LexicalDensity != 0 || rec.Words != 0 {
			t.Fatalf("Compute(%q) = %+v, want zero scores", text, rec)
		}
	}
}

func TestComputeCounts(t *testing.T) {
	engine := newTestEngine(t)
	text := "The cat sat.\n\nThe cat ran away\n"
	got := engine.Compute(text)
	want := Record{
		Words:     7,
		Lines:     2,
		Chars:     len(text),
		Sentences: 2,
		Syllables: 8,
	}
	got.Readability, got.Sentiment, got.LexicalDensity = 0, 0, 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeWordsMatchesWordTable(t *testing.T) {
	lex, err := lexicon.LoadSentiment("vader-lite-1")
	if err != nil {
		t.Fatalf("LoadSentiment: %v", err)
	}
	stop, err := lexicon.LoadStopwords("en-v1")
	if err != nil {
		t.Fatalf("LoadStopwords: %v", err)
	}
	engine := New(lex, stop)
	counter := wordfreq.NewCounter(stop)
	for _, text := range []string{
		"I love the way you lie\nAnd the night is young",
		"Hello darkness my old friend\nHello again",
		"the the the",
		"",
	} {
		rec := engine.Compute(text)
		if total := wordfreq.Total(counter.Count(text)); rec.Words != total {
			t.Fatalf("Compute(%q).Words = %d, word table total %d", text, rec.Words, total)
		}
		// Stop words still count toward readability and lexical density.
		all := New(lex, nil).Compute(text)
		if rec.Readability != all.Readability || rec.LexicalDensity != all.LexicalDensity {
			t.Fatalf("Compute(%q) scores changed by stop list: %+v vs %+v", text, rec, all)
		}
	}
}

func TestReadabilityFlesch(t *testing.T) {
	engine := newTestEngine(t)
	rec := engine.Compute("The cat sat.")
	want := 206.835 - 1.015*3 - 84.6*1
	if math.Abs(rec.Readability-want) > 1e-9 {
		t.Fatalf("readability = %v, want %v", rec.Readability, want)
	}
}

func TestCountSentences(t *testing.T) {
	cases := map[string]int{
		"hello world\nhow are you?": 2,
		"Stop. Go! Now?":            3,
		"Wait... what?!":            2,
		"no punctuation at all":     1,
		"line one\n\nline two\n":    2,
		`she said "leave."`:         1,
		"":                          0,
	}
	for text, want := range cases {
		if got := countSentences(text); got != want {
			t.Fatalf("countSentences(%q) = %d, want %d", text, got, want)
		}
	}
}

func TestSyllables(t *testing.T) {
	cases := map[string]int{
		"love":      1,
		"little":    2,
		"loved":     1,
		"wanted":    2,
		"boxes":     2,
		"makes":     1,
		"the":       1,
		"beautiful": 3,
		"agree":     2,
		"yesterday": 3,
		"1989":      1,
		"Señor":     2,
	}
	for word, want := range cases {
		if got := Syllables(word); got != want {
			t.Fatalf("Syllables(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestSentimentPolarity(t *testing.T) {
	engine := newTestEngine(t)
	score := func(text string) float64 { return engine.Compute(text).Sentiment }

	if s := score("I love you"); s <= 0.5 {
		t.Fatalf("expected strong positive, got %v", s)
	}
	if s := score("I do not love you"); s >= 0 {
		t.Fatalf("negation should flip polarity, got %v", s)
	}
	if s := score("I hate this"); s >= 0 {
		t.Fatalf("expected negative, got %v", s)
	}
	if score("very good") <= score("good") {
		t.Fatal("booster should intensify")
	}
	if score("I LOVE you") <= score("I love you") {
		t.Fatal("shouting should intensify in mixed-case text")
	}
	if score("good!") <= score("good") {
		t.Fatal("exclamation should intensify")
	}
	if s := score("good but bad"); s >= 0 {
		t.Fatalf("clause after but should dominate, got %v", s)
	}
	if s := score("the table is wooden"); s != 0 {
		t.Fatalf("neutral text should score 0, got %v", s)
	}
}

func TestSentimentBounded(t *testing.T) {
	engine := newTestEngine(t)
	text := strings.Repeat("LOVE love amazing wonderful perfect!!! ", 50)
	if s := engine.Compute(text).Sentiment; s > 1 || s < 0.9 {
		t.Fatalf("expected saturated positive in [0.9, 1], got %v", s)
	}
	text = strings.Repeat("hate kill dead evil ", 50)
	if s := engine.Compute(text).Sentiment; s < -1 || s > -0.9 {
		t.Fatalf("expected saturated negative in [-1, -0.9], got %v", s)
	}
}

func TestLexicalDensity(t *testing.T) {
	engine := newTestEngine(t)
	if d := engine.Compute("la la la la").LexicalDensity; d != 0.25 {
		t.Fatalf("density = %v, want 0.25", d)
	}
	if d := engine.Compute("every word differs here").LexicalDensity; d != 1 {
		t.Fatalf("density = %v, want 1", d)
	}
}

func TestComputeDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	text := "Cause, baby, now we got bad blood\nYou know it used to be mad love!"
	first := engine.Compute(text)
	for range 5 {
		if diff := cmp.Diff(first, engine.Compute(text)); diff != "" {
			t.Fatalf("Compute not deterministic:\n%s", diff)
		}
	}
}
