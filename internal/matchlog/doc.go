// Package matchlog writes the matched and missing item logs of a run. Each
// line is tab-separated: artist, album, title, then either the bound document
// and score or the reason the item was not bound.
package matchlog
