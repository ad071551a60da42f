package wordfreq

import (
	"slices"
	"strings"

	"lyricsync/internal/lexicon"
	"lyricsync/internal/textutil"
)

// Table maps a word to its occurrence count.
type Table map[string]int

// Entry is one ranked word.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Tokenize splits text into lowercase, accent-folded word tokens.
func Tokenize(text string) []string {
	return textutil.Words(text)
}

// Counter counts words, skipping a fixed stop-word list.
type Counter struct {
	stop *lexicon.Stopwords
}

// NewCounter returns a counter that excludes stop. A nil list excludes nothing.
func NewCounter(stop *lexicon.Stopwords) *Counter {
	return &Counter{stop: stop}
}

// Count returns the word counts of text without stop words.
func (c *Counter) Count(text string) Table {
	table := make(Table)
	for _, word := range Tokenize(text) {
		if c != nil && c.stop.Contains(word) {
			continue
		}
		table[word]++
	}
	return table
}

// Rollup sums tables into a new one.
func Rollup(tables ...Table) Table {
	out := make(Table)
	for _, table := range tables {
		for word, count := range table {
			out[word] += count
		}
	}
	return out
}

// Total returns the sum of all counts.
func Total(table Table) int {
	total := 0
	for _, count := range table {
		total += count
	}
	return total
}

// Top ranks words by count descending, then word ascending. n <= 0 returns
// every entry.
func Top(table Table, n int) []Entry {
	entries := Entries(table)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Entries returns the whole table in rank order.
func Entries(table Table) []Entry {
	entries := make([]Entry, 0, len(table))
	for word, count := range table {
		entries = append(entries, Entry{Word: word, Count: count})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Word, b.Word)
	})
	return entries
}
