package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rollcall/internal/config"
	"rollcall/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	return string(data)
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Outputs: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logging.NewComponentLogger(logger, "bootstrap").Info("directory built", logging.Int("entries", 4), logging.String("note", "two words"))

	out := readLog(t, path)
	for _, want := range []string{"INFO bootstrap: directory built", "entries=4", `note="two words"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "logger_test.go") {
		t.Fatalf("info level should omit source: %q", out)
	}
}

func TestDebugLevelIncludesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Level: "debug", Outputs: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("window probed")

	if out := readLog(t, path); !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected source location in %q", out)
	}
}

func TestLevelFiltersRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Level: "warn", Outputs: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	out := readLog(t, path)
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected filtering result: %q", out)
	}
}

func TestJSONLoggerCarriesContextFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Outputs: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-123")
	ctx = logging.WithPartition(ctx, "courses_1.csv")
	logger.InfoContext(ctx, "partition read", logging.Int("fields", 2))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, path))), &record); err != nil {
		t.Fatalf("decode json failed: %v", err)
	}
	if record["level"] != "info" || record["msg"] != "partition read" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record[logging.FieldRunID] != "run-123" || record[logging.FieldPartition] != "courses_1.csv" {
		t.Fatalf("missing context fields: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Level = "warn"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	logging.WarnWithContext(logger, "partition skipped", "corpus_partition_skipped")

	out := readLog(t, cfg.LogFilePath())
	for _, want := range []string{"partition skipped", "event_type=corpus_partition_skipped", "error_hint=", "impact="} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Outputs: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := logging.WithRunID(context.Background(), "abc")
	logging.WithContext(ctx, logger).Info("started")

	if out := readLog(t, path); !strings.Contains(out, "run_id=abc") {
		t.Fatalf("expected run id in %q", out)
	}
	if id, ok := logging.RunIDFromContext(ctx); !ok || id != "abc" {
		t.Fatalf("RunIDFromContext = %q, %v", id, ok)
	}
}
