// Package names resolves unseparated personnel-name strings into individual
// canonical names and builds the name directory used to normalize records.
//
// The package has two phases. Bootstrap scans a corpus of raw values, trusts
// every value that is exactly three characters long as a confirmed name, and
// partitions everything else with a suffix dynamic program over the confirmed
// set. Leftover runs are accepted only when they are two characters long or a
// positive multiple of three; any other run rejects the whole value, which is
// then reported as high risk. The union of resolved tokens becomes a sorted
// Directory with sequential identifiers.
//
// The application phase uses a Directory snapshot and a forward greedy
// longest-match Segmenter. Characters that start no directory name are
// skipped without a token.
//
// Lengths and substrings are measured in runes. Nothing in this package
// performs I/O; persistence lives in dictstore and corpus reading in corpus.
package names
