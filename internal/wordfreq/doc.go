// Package wordfreq counts word occurrences per track, rolls track tables up
// into album tables, and ranks the most frequent words.
package wordfreq
