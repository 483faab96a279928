// Package runlog keeps a SQLite ledger of bootstrap runs.
//
// Every bootstrap run appends one row: when it ran, how much of the corpus it
// read, the size of what it produced, the content version of the directory it
// wrote, and whether it succeeded. Directory identifiers are reassigned by
// every run, so the ledger is how operators tell which directory a given set
// of identifiers came from.
package runlog
