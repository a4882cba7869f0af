// Package pngmeta extracts generation parameters embedded in PNG text
// chunks by image generation tools and isolates the positive prompt from
// them.
//
// Extraction walks the chunk stream directly because image/png discards
// textual chunks during decode. Only the "parameters" keyword is looked at.
package pngmeta
