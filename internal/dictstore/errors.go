package dictstore

import "errors"

var (
	// ErrLocked reports that another writer holds the dictionary lock.
	ErrLocked = errors.New("dictionary directory is locked by another writer")
	// ErrPersist reports that the artifacts could not be replaced.
	ErrPersist = errors.New("persist dictionary artifacts")
)
