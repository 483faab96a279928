package dictstore

import (
	"fmt"
	"io"
	"strings"

	"rollcall/internal/names"
	"rollcall/internal/tabular"
)

// Column names of the persisted artifacts.
const (
	ColumnID    = "teacher_id"
	ColumnName  = "teacher_name"
	ColumnAlias = "alias"
)

// DirectoryHeader is the header row of the directory artifact.
var DirectoryHeader = []string{ColumnID, ColumnName, ColumnAlias}

// HighRiskHeader is the header row of the high-risk artifact.
var HighRiskHeader = []string{ColumnName}

// EncodeDirectory writes dir as CSV in entry order.
func EncodeDirectory(w io.Writer, dir *names.Directory) error {
	entries := dir.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.ID, e.Name, e.Alias})
	}
	return tabular.Write(w, DirectoryHeader, rows)
}

// EncodeHighRisk writes the unresolved raw values as CSV.
func EncodeHighRisk(w io.Writer, raws []string) error {
	rows := make([][]string, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, []string{raw})
	}
	return tabular.Write(w, HighRiskHeader, rows)
}

// DecodeDirectory reads a directory artifact. Only the name column is
// required; curated files may leave identifiers or aliases out.
func DecodeDirectory(r io.Reader) (*names.Directory, error) {
	table, err := tabular.Read(r)
	if err != nil {
		return nil, err
	}
	nameCol := table.Column(ColumnName)
	if nameCol < 0 {
		return nil, fmt.Errorf("directory has no %s column", ColumnName)
	}
	idCol := table.Column(ColumnID)
	aliasCol := table.Column(ColumnAlias)

	entries := make([]names.Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		name, _ := tabular.Value(row, nameCol)
		id, _ := tabular.Value(row, idCol)
		alias, _ := tabular.Value(row, aliasCol)
		entries = append(entries, names.Entry{ID: id, Name: name, Alias: alias})
	}
	return names.NewDirectory(entries), nil
}

// DecodeHighRisk reads a high-risk artifact, dropping blank rows.
func DecodeHighRisk(r io.Reader) ([]string, error) {
	table, err := tabular.Read(r)
	if err != nil {
		return nil, err
	}
	col := table.Column(ColumnName)
	if col < 0 {
		return nil, fmt.Errorf("high-risk list has no %s column", ColumnName)
	}
	raws := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if v, ok := tabular.Value(row, col); ok && strings.TrimSpace(v) != "" {
			raws = append(raws, v)
		}
	}
	return raws, nil
}
