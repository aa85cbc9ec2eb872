// Package main hosts the filescape CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into render runs,
// dry-run plans, scan summaries, dependency checks, and configuration
// scaffolding. Configuration resolution and logger setup are centralized so
// subcommands stay declarative; the heavy lifting lives in the internal
// pipeline packages.
package main
