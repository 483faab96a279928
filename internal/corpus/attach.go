package corpus

import (
	"fmt"

	"rollcall/internal/tabular"
)

// Attach fills column target of every row with fn applied to column source.
// target is appended to the header when absent and overwritten otherwise.
// Rows missing the source cell get fn(""). It returns the number of rows
// written.
func Attach(table *tabular.Table, source, target string, fn func(string) string) (int, error) {
	src := table.Column(source)
	if src < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, source)
	}
	dst := table.Column(target)
	if dst < 0 {
		table.Header = append(table.Header, target)
		dst = len(table.Header) - 1
	}

	for i, row := range table.Rows {
		value, _ := tabular.Value(row, src)
		for len(row) < len(table.Header) {
			row = append(row, "")
		}
		row[dst] = fn(value)
		table.Rows[i] = row
	}
	return len(table.Rows), nil
}
