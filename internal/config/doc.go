// Package config loads, normalizes, and validates rollcall configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// ROLLCALL_RAW_DIR. The Config type centralizes where the raw corpus lives,
// which column carries personnel names, how placeholders map to a synthetic
// name, and where the dictionary artifacts are written.
//
// Always obtain settings through this package so downstream code receives
// expanded paths and clear validation errors.
package config
