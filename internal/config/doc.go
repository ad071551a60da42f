// Package config loads, normalizes, and validates lyricsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads database credentials from a .env file,
// and honours environment fallbacks such as POSTGRES_USER and LYRICSYNC_DSN.
// The Config type centralizes the matching threshold, lexical resource
// versions, and worker count so they are never hardcoded downstream.
package config
