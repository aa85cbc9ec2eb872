// Package preflight provides readiness checks for the external tools and
// filesystem paths a render run depends on.
//
// These checks run in two contexts:
//   - The render command calls RunAll before any conversion work starts, so a
//     doomed run fails in milliseconds instead of after minutes of rendering.
//   - The CLI "filescape deps" command displays the same results as a table.
//
// Probe condenses the tool checks into a Capabilities value that downstream
// components receive explicitly.
package preflight
