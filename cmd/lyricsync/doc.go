// Command lyricsync reconciles lyric documents with track metadata, computes
// lyric metrics and word frequencies, and persists the results.
//
// Subcommands:
//
//	run       process every album under the input directory
//	analyze   print metrics and top words for one text
//	top       print an album's most frequent words from the store
//	summary   print stored albums and per-table row counts
//	config    init, validate or show the configuration
package main
