package metrics

import (
	"strings"
	"unicode/utf8"

	"lyricsync/internal/lexicon"
	"lyricsync/internal/textutil"
)

// Record holds the per-track text metrics stored with the lyrics row. Words
// counts the tokens that the word-frequency tables keep, so it equals the sum
// of a track's stored word counts.
type Record struct {
	Readability    float64 `json:"readability"`
	Sentiment      float64 `json:"sentiment"`
	LexicalDensity float64 `json:"lexical_density"`
	Words          int     `json:"words"`
	Lines          int     `json:"lines"`
	Chars          int     `json:"chars"`
	Sentences      int     `json:"sentences"`
	Syllables      int     `json:"syllables"`
}

// Engine computes metrics against one fixed sentiment lexicon and stop-word
// list. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	lexicon *lexicon.Sentiment
	stop    *lexicon.Stopwords
}

// New returns an engine scoring sentiment with lex. Words in stop are left out
// of Record.Words; a nil list leaves out nothing.
func New(lex *lexicon.Sentiment, stop *lexicon.Stopwords) *Engine {
	return &Engine{lexicon: lex, stop: stop}
}

// LexiconVersion reports the sentiment lexicon in use.
func (e *Engine) LexiconVersion() string {
	if e == nil || e.lexicon == nil {
		return ""
	}
	return e.lexicon.Version
}

// Compute derives every metric from text. Degenerate input (empty or
// punctuation only) yields zero scores.
func (e *Engine) Compute(text string) Record {
	words := textutil.Words(text)
	rec := Record{
		Chars: utf8.RuneCountInString(text),
		Lines: countLines(text),
	}
	rec.Sentences = countSentences(text)
	for _, word := range words {
		rec.Syllables += Syllables(word)
		if e == nil || !e.stop.Contains(word) {
			rec.Words++
		}
	}
	rec.Readability = fleschReadingEase(len(words), rec.Sentences, rec.Syllables)
	rec.LexicalDensity = LexicalDensity(words)
	if e != nil && e.lexicon != nil {
		rec.Sentiment = sentiment(e.lexicon, text)
	}
	return rec
}

// LexicalDensity is the ratio of distinct word forms to total words.
func LexicalDensity(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(words))
	for _, word := range words {
		distinct[word] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(words))
}

func fleschReadingEase(words, sentences, syllables int) float64 {
	if words == 0 {
		return 0
	}
	if sentences == 0 {
		sentences = 1
	}
	w := float64(words)
	return 206.835 - 1.015*(w/float64(sentences)) - 84.6*(float64(syllables)/w)
}

func countLines(text string) int {
	lines := 0
	for line := range strings.Lines(text) {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	return lines
}

// countSentences counts runs of terminators, and treats every non-empty line
// that does not end in a terminator as one more sentence.
func countSentences(text string) int {
	total := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		inRun := false
		for _, r := range line {
			if isTerminator(r) {
				if !inRun {
					total++
				}
				inRun = true
				continue
			}
			inRun = false
		}
		trimmed := strings.TrimRight(line, `"')]`+"”’")
		if last, _ := utf8.DecodeLastRuneInString(trimmed); !isTerminator(last) {
			total++
		}
	}
	return total
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
