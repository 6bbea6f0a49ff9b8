// Package engine implements the directory analysis provider.
//
// The package is organized into specialized modules:
//   - resolve: user path normalization (home shorthand, symlinks)
//   - traverse: single-level and recursive file enumeration
//   - aggregate: counts, listings, size summaries, classification
//   - duplicates: content-hash duplicate detection
//   - timeline: modification-time windows, ranges, and calendar buckets
//   - mutate: rename, move, info, delete with safety guards
//   - trash: platform trash relocation and backups
//
// All operations:
//   - Re-read filesystem metadata on every call (no caching)
//   - Report expected failures as structured Result errors, never panics
//   - Skip unreadable entries during scans instead of aborting
//   - Honor context cancellation at per-file granularity
package engine
