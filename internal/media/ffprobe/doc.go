// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Probe executes the binary and condenses the response into an Info value
// carrying the container duration and stream layout. The render pipeline uses
// it to discover how long a supplied audio track runs; everything else in the
// ffprobe output is ignored.
package ffprobe
