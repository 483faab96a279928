package corpus

import "errors"

var (
	// ErrMissingField reports a partition without the configured personnel
	// column.
	ErrMissingField = errors.New("personnel field missing")
	// ErrNoPartitions reports that no readable partition was found.
	ErrNoPartitions = errors.New("no corpus partitions")
)
