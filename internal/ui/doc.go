// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the local library:
//  1. [PlaylistListView] : Browse stored playlists
//  2. [TrackListView] : Inspect a playlist's tracks
//  3. [ConfirmView] : Confirm a sync against Spotify
//  4. [ResultView] : Display the sync outcome
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
