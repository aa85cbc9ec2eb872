// Package deps reports the availability of external binaries the render
// pipeline shells out to. Nothing here executes the tools; it only resolves
// them so preflight and the CLI can explain what a run will be able to do.
package deps
