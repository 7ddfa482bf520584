// Package main hosts the audioconv CLI entrypoint and command graph.
//
// The root command converts every supported audio file in a directory to a
// single target format. Subcommands cover preflight checks, configuration
// scaffolding, and the optional run history. Configuration resolution and
// logger setup live here; conversion itself is done by internal/batch.
package main
