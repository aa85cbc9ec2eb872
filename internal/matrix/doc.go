// Package matrix converts scanned files into bounded 2D numeric fields, the
// raw material of the surface animation.
//
// The conversion policy is a closed variant over three kinds resolved from the
// file extension: images decode to grayscale intensities, text files parse as
// whitespace-delimited numeric rows, and everything else synthesizes a matrix
// from file metadata. Each kind owns a deterministic fallback, so Convert is
// total; a corrupt or unreadable file still yields something to draw.
package matrix
