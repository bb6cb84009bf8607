// Package tasks implements the batch operations behind the CLI: resolving a
// list of songs against the Spotify catalog and reconciling the matches into
// a target playlist.
//
// The core abstractions are [SearchSession], which drives per-song search and
// scoring over a batch without aborting on individual failures, and
// [SyncEngine], which orchestrates the end-to-end file-to-playlist run.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer. All remote calls are sequential; pacing comes
// from the API client's own throttle.
package tasks
