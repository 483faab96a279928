package fileutil_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"rollcall/internal/fileutil"
)

func TestWriteAtomicReplacesDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "out.csv")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := fileutil.WriteAtomic(dest, 0, func(w io.Writer) error {
		_, err := io.WriteString(w, "new content")
		return err
	})
	if err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "new content" {
		t.Fatalf("unexpected content %q", data)
	}
	assertNoTempFiles(t, filepath.Dir(dest))
}

func TestWriteAtomicKeepsOldContentOnError(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	boom := errors.New("boom")
	err := fileutil.WriteAtomic(dest, 0, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "old" {
		t.Fatalf("destination changed to %q", data)
	}
	assertNoTempFiles(t, dir)
}

func TestCommitAllAndChecksum(t *testing.T) {
	dir := t.TempDir()
	a, err := fileutil.Stage(filepath.Join(dir, "a.csv"), 0)
	if err != nil {
		t.Fatalf("Stage a: %v", err)
	}
	b, err := fileutil.Stage(filepath.Join(dir, "b.csv"), 0)
	if err != nil {
		t.Fatalf("Stage b: %v", err)
	}
	_, _ = io.WriteString(a, "alpha")
	_, _ = io.WriteString(b, "beta")
	if err := fileutil.CommitAll(a, b); err != nil {
		t.Fatalf("CommitAll failed: %v", err)
	}
	for _, s := range []*fileutil.Staged{a, b} {
		sum, err := fileutil.HashFile(s.Path())
		if err != nil {
			t.Fatalf("HashFile: %v", err)
		}
		if sum != s.Checksum() {
			t.Fatalf("checksum mismatch for %s: %s vs %s", s.Path(), sum, s.Checksum())
		}
	}
	if a.Size() != 5 || b.Size() != 4 {
		t.Fatalf("unexpected sizes %d %d", a.Size(), b.Size())
	}
	assertNoTempFiles(t, dir)
}

func TestCommitAllRestoresEarlierDestinations(t *testing.T) {
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	dirB := filepath.Join(root, "b")
	destA := filepath.Join(dirA, "a.csv")
	if err := os.MkdirAll(dirA, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(destA, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, err := fileutil.Stage(destA, 0)
	if err != nil {
		t.Fatalf("Stage a: %v", err)
	}
	b, err := fileutil.Stage(filepath.Join(dirB, "b.csv"), 0)
	if err != nil {
		t.Fatalf("Stage b: %v", err)
	}
	_, _ = io.WriteString(a, "alpha")
	_, _ = io.WriteString(b, "beta")

	// Removing b's directory makes its rename fail after a has been replaced.
	if err := os.RemoveAll(dirB); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := fileutil.CommitAll(a, b); err == nil {
		t.Fatal("expected CommitAll to fail")
	}

	data, err := os.ReadFile(destA)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "old" {
		t.Fatalf("expected a.csv restored, got %q", data)
	}
	assertNoTempFiles(t, dirA)
	if leftovers, _ := filepath.Glob(filepath.Join(dirA, ".bak-*")); len(leftovers) != 0 {
		t.Fatalf("backup files left behind: %v", leftovers)
	}
}

func TestAbortLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	s, err := fileutil.Stage(filepath.Join(dir, "x.csv"), 0)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	_, _ = io.WriteString(s, "data")
	s.Abort()
	if _, err := os.Stat(filepath.Join(dir, "x.csv")); !os.IsNotExist(err) {
		t.Fatalf("expected destination to be absent, got %v", err)
	}
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("temporary files left behind: %v", matches)
	}
}
