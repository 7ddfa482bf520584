// Package conversion runs the external conversion tool for a single file.
//
// A Task pairs an input path with its deterministic output path and target
// format. Runner invokes the tool as a child process ("<tool> [args...] -i
// <input> <output>"), captures its output streams, and turns the outcome into
// a Result: start failures are tagged services.ErrToolLaunch, non-zero exits
// services.ErrConversion with a *ToolError carrying the exit code and stderr.
//
// Conversion semantics are entirely the tool's responsibility; this package
// never inspects or cleans up partial output.
package conversion
