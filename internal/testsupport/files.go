package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"rollcall/internal/config"
	"rollcall/internal/tabular"
)

// CourseColumn is the extra column written by WritePartition so fixtures
// look like real course rows.
const CourseColumn = "科目名稱"

// WriteCSV writes a BOM-prefixed CSV file, creating parent directories.
func WriteCSV(t testing.TB, path string, header []string, rows ...[]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := tabular.Write(f, header, rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePartition writes a corpus partition named name into the raw
// directory with one row per personnel value and returns its path.
func WritePartition(t testing.TB, cfg *config.Config, name string, values ...string) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.RawDir, name)
	rows := make([][]string, 0, len(values))
	for i, v := range values {
		rows = append(rows, []string{courseName(i), v})
	}
	WriteCSV(t, path, []string{CourseColumn, cfg.Corpus.NameField}, rows...)
	return path
}

// ReadCSV decodes a CSV file written by the code under test.
func ReadCSV(t testing.TB, path string) *tabular.Table {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	table, err := tabular.Read(f)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return table
}

func courseName(i int) string {
	return "課程" + string(rune('A'+i%26))
}
