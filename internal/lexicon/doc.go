// Package lexicon embeds the versioned lexical resources used by the metrics
// engine and the word-frequency aggregator: the sentiment valence lexicon and
// the stop-word lists. Resources are YAML files compiled into the binary, so
// a given version always yields the same scores.
package lexicon
