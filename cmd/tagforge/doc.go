// Command tagforge curates image tagging datasets from the terminal: sidecar
// tag files, frequency views, fuzzy suggestions, bulk edits with undo, and
// wildcard-driven category assignment.
package main
