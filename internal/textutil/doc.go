// Package textutil provides text processing utilities shared by the
// normalizer, the matcher, and the lyric analytics.
//
// The primary use cases are:
//   - Folding Unicode text (diacritics, typographic quotes and dashes) to a comparable form
//   - Splitting lyrics into lowercase word tokens
//   - Creating token-based fingerprints from titles and computing cosine similarity
package textutil
