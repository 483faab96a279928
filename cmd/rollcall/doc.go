// Package main hosts the rollcall CLI entrypoint and command graph.
//
// The Cobra command tree wraps the bootstrap and normalization runners, the
// directory artifacts, and the run ledger. It resolves configuration and
// logging once so subcommands only translate flags into library calls and
// render the results.
package main
