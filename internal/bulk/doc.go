// Package bulk applies tag mutations across an arbitrary subset of dataset
// images. Every per-image change goes through the store's save path, so each
// affected image gets its own undo entry and the frequency index stays
// consistent. Failures on one image never abort the rest of the batch.
package bulk
