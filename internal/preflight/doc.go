// Package preflight provides readiness checks for the filesystem paths,
// lexical resources and database that a run depends on.
//
// The run command calls RunAll before taking the run lock so a missing input
// directory or unwritable state directory fails fast. "lyricsync config
// validate" prints every check, including the database connection.
package preflight
