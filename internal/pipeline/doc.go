// Package pipeline runs the reconciliation workflow over an input catalog.
//
// A run takes the state directory lock, discovers album folders and processes
// each album on a bounded worker pool: load metadata and lyric documents,
// collapse duplicate track rows, match documents to tracks, assemble one
// canonical record per track, compute lyric metrics and word counts, and
// persist the album in one transaction. Matched and missing items are written
// to the run's match logs, and run telemetry is exported as a Prometheus
// textfile when configured.
package pipeline
