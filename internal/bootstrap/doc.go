// Package bootstrap runs one directory bootstrap end to end.
//
// A run reads the personnel field from every corpus partition, derives the
// confirmed names, resolves the remaining values, builds a fresh directory,
// replaces the generated directory and high-risk artifacts, and appends the
// outcome to the run ledger. Identifiers are reassigned on every run.
package bootstrap
