// Package merge assembles the canonical per-track record from album metadata
// and the matcher's decisions.
//
// Duplicate metadata rows that normalize to the same key are collapsed to the
// most complete row before matching. Natural-key identity across runs is
// enforced by the store's upserts, so re-running ingestion updates rows in
// place instead of creating new logical tracks.
package merge
