// Package match aligns lyric documents with the metadata tracks of a single
// album.
//
// Every (track, document) pair is scored into an index-addressed arena using
// a blend of edit-distance ratio and token cosine similarity over normalized
// keys. Pairs at or above the acceptance threshold are assigned greedily by
// descending score with deterministic tie-breaks, so no document serves two
// tracks and no track receives two documents. Tracks left over are reported
// as below-threshold or no-candidate.
package match
