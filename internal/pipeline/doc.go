// Package pipeline orchestrates a complete render run. It walks the scan
// root, converts each file into a matrix, negotiates the animation duration
// against any audio input, rasterizes the scheduled frames, and hands the
// frame sequence to the external encoder.
//
// A run holds an advisory lock on the output artifact for its whole
// lifetime, so concurrent runs targeting the same file fail fast instead of
// clobbering each other.
package pipeline
