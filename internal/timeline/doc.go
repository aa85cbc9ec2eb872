// Package timeline negotiates the animation's pacing.
//
// The Reconciler resolves the optional audio track and decides the
// authoritative duration between two independent timelines (audio length vs.
// file count). Plan then maps that duration and the frame rate onto the
// matrix sequence, producing per-frame windows with fade weights and the
// rotating camera azimuth.
package timeline
