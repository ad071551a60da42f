// Package metrics derives per-track text metrics from lyrics: Flesch reading
// ease, a lexicon-based sentiment compound score, and lexical density, along
// with the word, line, sentence, and syllable counts they are built from.
package metrics
