// Package failures defines the error taxonomy shared by the ingestion,
// matching, and persistence layers.
//
// Errors are tagged with sentinel markers through Wrap and classified by
// ClassOf into per-item, per-album, or fatal failures. The pipeline uses the
// class to decide whether to log and continue, degrade an album to
// all-unmatched, or abort the run.
package failures
