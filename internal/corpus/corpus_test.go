package corpus_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rollcall/internal/corpus"
	"rollcall/internal/logging"
	"rollcall/internal/tabular"
	"rollcall/internal/testsupport"
)

func TestDiscoverSortsMatches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	b := testsupport.WritePartition(t, cfg, "courses_1122.csv", "王小明")
	a := testsupport.WritePartition(t, cfg, "courses_1121.csv", "李大華")
	testsupport.WriteCSV(t, filepath.Join(cfg.Paths.RawDir, "notes.csv"), []string{"x"})
	if err := os.MkdirAll(filepath.Join(cfg.Paths.RawDir, "courses_dir.csv"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	paths, err := corpus.Discover(cfg.Paths.RawDir, cfg.Corpus.FilePattern)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if diff := cmp.Diff([]string{a, b}, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverReportsNoPartitions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.RawDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	_, err := corpus.Discover(cfg.Paths.RawDir, cfg.Corpus.FilePattern)
	if !errors.Is(err, corpus.ErrNoPartitions) {
		t.Fatalf("expected ErrNoPartitions, got %v", err)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	_, err := corpus.Discover(filepath.Join(t.TempDir(), "absent"), "*.csv")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadFieldHandlesBOMAndShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses_1.csv")
	content := "\ufeff科目名稱,教師姓名\n國文,王小明\n數學\n英文,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := corpus.ReadField(context.Background(), path, "教師姓名")
	if err != nil {
		t.Fatalf("ReadField failed: %v", err)
	}
	if diff := cmp.Diff([]string{"王小明", ""}, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFieldMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses_1.csv")
	testsupport.WriteCSV(t, path, []string{"科目名稱"}, []string{"國文"})

	_, err := corpus.ReadField(context.Background(), path, "教師姓名")
	if !errors.Is(err, corpus.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the partition: %v", err)
	}
}

func TestAggregateMergesInPartitionOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p1 := testsupport.WritePartition(t, cfg, "courses_1.csv", "ABC", "ABCDE")
	p2 := testsupport.WritePartition(t, cfg, "courses_2.csv", "XYZ")
	p3 := testsupport.WritePartition(t, cfg, "courses_3.csv", "FGHI", "")

	agg := corpus.Aggregator{Field: cfg.Corpus.NameField, Workers: 3}
	got, err := agg.Aggregate(context.Background(), []string{p1, p2, p3})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if diff := cmp.Diff([]string{"ABC", "ABCDE", "XYZ", "FGHI", ""}, got.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	wantParts := []corpus.Partition{{Path: p1, Fields: 2}, {Path: p2, Fields: 1}, {Path: p3, Fields: 2}}
	if diff := cmp.Diff(wantParts, got.Partitions); diff != "" {
		t.Fatalf("partitions mismatch (-want +got):\n%s", diff)
	}
	if len(got.Skipped) != 0 {
		t.Fatalf("expected no skips, got %v", got.Skipped)
	}
}

func TestAggregateSkipsBrokenPartitions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	good := testsupport.WritePartition(t, cfg, "courses_1.csv", "ABC")
	noField := filepath.Join(cfg.Paths.RawDir, "courses_2.csv")
	testsupport.WriteCSV(t, noField, []string{"科目名稱"}, []string{"國文"})
	missing := filepath.Join(cfg.Paths.RawDir, "courses_3.csv")

	logPath := filepath.Join(t.TempDir(), "agg.log")
	logger, err := logging.New(logging.Options{Level: "warn", Outputs: []string{logPath}})
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}

	agg := corpus.Aggregator{Field: cfg.Corpus.NameField, Workers: 2, Logger: logger}
	got, err := agg.Aggregate(context.Background(), []string{good, noField, missing})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if diff := cmp.Diff([]string{"ABC"}, got.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if len(got.Skipped) != 2 {
		t.Fatalf("expected 2 skips, got %d", len(got.Skipped))
	}
	if got.Skipped[0].Path != noField || !errors.Is(got.Skipped[0].Err, corpus.ErrMissingField) {
		t.Fatalf("unexpected first skip: %+v", got.Skipped[0])
	}
	if got.Skipped[1].Path != missing || !errors.Is(got.Skipped[1].Err, os.ErrNotExist) {
		t.Fatalf("unexpected second skip: %+v", got.Skipped[1])
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if n := strings.Count(string(data), "event_type=corpus_partition_skipped"); n != 2 {
		t.Fatalf("expected 2 skip warnings, got %d in %q", n, data)
	}
}

func TestAggregateHonorsCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := testsupport.WritePartition(t, cfg, "courses_1.csv", "ABC")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	agg := corpus.Aggregator{Field: cfg.Corpus.NameField, Workers: 1}
	if _, err := agg.Aggregate(ctx, []string{p}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAttachAppendsAndOverwrites(t *testing.T) {
	table := &tabular.Table{
		Header: []string{"科目名稱", "教師姓名"},
		Rows: [][]string{
			{"國文", "ABC"},
			{"數學"},
		},
	}
	upper := func(s string) string { return "<" + s + ">" }

	n, err := corpus.Attach(table, "教師姓名", "教師列表", upper)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
	want := &tabular.Table{
		Header: []string{"科目名稱", "教師姓名", "教師列表"},
		Rows: [][]string{
			{"國文", "ABC", "<ABC>"},
			{"數學", "", "<>"},
		},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}

	if _, err := corpus.Attach(table, "教師姓名", "教師列表", func(string) string { return "x" }); err != nil {
		t.Fatalf("second Attach failed: %v", err)
	}
	if len(table.Header) != 3 || table.Rows[0][2] != "x" {
		t.Fatalf("expected overwrite in place, got %v", table)
	}
}

func TestAttachMissingSource(t *testing.T) {
	table := &tabular.Table{Header: []string{"科目名稱"}}
	if _, err := corpus.Attach(table, "教師姓名", "教師列表", strings.TrimSpace); !errors.Is(err, corpus.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}
