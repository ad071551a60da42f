// Package catalog models the input catalog (artists, albums, track metadata
// rows, and unbound lyric documents) and loads it from the on-disk folder
// tree: one folder per artist, one folder per album holding tracks.csv and
// the album's lyric text files.
package catalog
