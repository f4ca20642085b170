// Package models defines the canonical value types persisted and exchanged
// by jamjar: playlists and tracks mirrored from Spotify, and the stored
// OAuth credential.
//
// Remote JSON payloads and database rows are converted into these types
// through explicit mapping functions (in internal/services and
// internal/repositories respectively) rather than ad hoc field indexing.
package models
