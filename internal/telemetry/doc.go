// Package telemetry records run metrics (album outcomes, match scores,
// missing items) on a private Prometheus registry and exports them as a
// textfile after each run.
package telemetry
