// Package suggest produces near-duplicate tag suggestions for an image by
// comparing its current tags against every tag known to the dataset's
// frequency index using Levenshtein distance.
package suggest
