// Package normalize attaches the resolved teacher list to every corpus
// record.
//
// A run loads one directory snapshot, splits the personnel field of every
// row with the greedy segmenter, and writes each partition with an extra
// list column to the processed directory. The directory is read-only for the
// whole run.
package normalize
