// Package category partitions dataset tags into named categories using
// wildcard keyword patterns, with snapshot-based undo/redo.
//
// Category definitions come from an external JSON catalog and are fixed for
// the session. Only membership, order, and pending display renames change at
// runtime. Commit rewrites every image's tag list ordered by category
// membership and records the assignments in a per-project grouping file so a
// later session can restore them.
package category
