// Package dictstore persists the teacher directory and the high-risk list.
//
// Both artifacts are UTF-8 CSV with a byte order mark so spreadsheet tools
// open them correctly. A bootstrap run replaces them together under an
// exclusive lock on the dictionary directory; a failure to write either file
// leaves both previous files in place.
package dictstore
