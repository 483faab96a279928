package corpus

import (
	"context"
	"fmt"
	"os"

	"rollcall/internal/tabular"
)

// ReadTable decodes the partition at path.
func ReadTable(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open partition %s: %w", path, err)
	}
	defer f.Close()

	table, err := tabular.Read(f)
	if err != nil {
		return nil, fmt.Errorf("decode partition %s: %w", path, err)
	}
	return table, nil
}

// ReadField returns the values of field from every row of the partition at
// path. Rows too short to carry the column are absent and omitted; empty
// cells are kept.
func ReadField(ctx context.Context, path, field string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return Field(table, path, field)
}

// Field extracts field from an already decoded table. path is only used in
// the error.
func Field(table *tabular.Table, path, field string) ([]string, error) {
	col := table.Column(field)
	if col < 0 {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrMissingField, field)
	}
	values := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if v, ok := tabular.Value(row, col); ok {
			values = append(values, v)
		}
	}
	return values, nil
}
