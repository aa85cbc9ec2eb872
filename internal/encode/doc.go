// Package encode drives the external ffmpeg binary to turn rendered frames
// into the final video artifact.
//
// The CLI client owns argument construction for the two encoder invocations
// (silent assembly, audio attachment). Muxer sequences them with the fallback
// chain: a failed audio mux degrades to the silent video, a failed silent
// encode fails the run.
package encode
