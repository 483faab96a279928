// Package corpus reads the raw course partitions that feed both phases of
// name resolution.
//
// A corpus is a directory of CSV partitions matching a file pattern, one per
// term. Discover lists them in a stable order, Aggregator merges the
// personnel field across partitions, and Attach writes a derived column back
// onto a partition for record normalization. A partition that cannot be read
// or lacks the personnel column is skipped; the rest of the corpus is still
// processed.
package corpus
