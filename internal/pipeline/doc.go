// Package pipeline orchestrates file discovery, per-file conversion, and
// batch summary accounting.
//
// The flow is strictly sequential: discover → (skip .webp) → convert →
// accumulate RunStats. Per-file failures are logged and counted, never
// propagated; only setup failures (missing directory, unreadable tree)
// abort a run.
package pipeline
