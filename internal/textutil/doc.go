// Package textutil provides the string primitives behind tag similarity and
// tag classification.
//
// The primary use cases are:
//   - Computing Levenshtein edit distance between tags for near-duplicate
//     suggestions
//   - Matching tags against glob-style wildcard patterns for automatic
//     categorization
//
// Distance operates on runes, so multi-byte tags compare by character rather
// than by byte. Wildcard matching is case-insensitive and supports any number
// of `*` wildcards, including interior ones.
package textutil
