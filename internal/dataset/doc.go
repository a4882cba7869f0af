// Package dataset owns the per-image tag collections for a loaded dataset
// session and their persistence to sidecar files.
//
// A Store is constructed per dataset folder, holds the ordered tag list of
// every discovered image, the global frequency index, and the bounded undo
// history. All mutation flows through SaveTags, which normalizes input
// (trim, drop empties, dedup keeping first occurrence, optional lowercase
// fold), writes the sidecar, and rebuilds the frequency index from scratch so
// the index always equals a full recount.
//
// The Store is single-actor by design: a flock-based lock file in the dataset
// folder refuses a second process, and no internal locking exists beyond
// that. Reloading a folder resets index and history entirely.
package dataset
