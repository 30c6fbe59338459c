// Package config loads, normalizes, and validates lyricsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LYRICSYNC_API_BIND. The Config type centralizes the aligner penalties,
// reconciler tuning, sync run limits and API settings so the CLI and the HTTP
// server are tuned from one place.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
