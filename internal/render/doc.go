// Package render rasterizes matrix windows into animation frames.
//
// The Compositor projects each matrix in a frame's window as a 3D height
// field onto a shared canvas, oldest members most transparent, with axis
// limits fixed across the whole sequence. Frames are written as JPEG files
// for the external encoder to assemble.
package render
