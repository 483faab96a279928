package dictstore_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"rollcall/internal/dictstore"
	"rollcall/internal/logging"
	"rollcall/internal/names"
	"rollcall/internal/testsupport"
)

func buildDirectory(t *testing.T, tokens ...string) *names.Directory {
	t.Helper()
	dir, err := names.BuildDirectory(tokens, names.DefaultIDFormat())
	if err != nil {
		t.Fatalf("BuildDirectory failed: %v", err)
	}
	return dir
}

func TestPublishWritesBothArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := dictstore.New(cfg)
	dir := buildDirectory(t, "XYZ", "ABC", "DE")

	pub, err := store.Publish(context.Background(), dir, []string{"FGHI"})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if pub.Version != dir.Version() {
		t.Fatalf("version mismatch: %s vs %s", pub.Version, dir.Version())
	}

	raw, err := os.ReadFile(store.AutoPath())
	if err != nil {
		t.Fatalf("read directory failed: %v", err)
	}
	want := "\ufeffteacher_id,teacher_name,alias\nT001,ABC,\nT002,DE,\nT003,XYZ,\n"
	if string(raw) != want {
		t.Fatalf("unexpected directory file:\n%q\nwant\n%q", raw, want)
	}

	risk := testsupport.ReadCSV(t, store.HighRiskPath())
	if diff := cmp.Diff([]string{"teacher_name"}, risk.Header); diff != "" {
		t.Fatalf("high-risk header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"FGHI"}}, risk.Rows); diff != "" {
		t.Fatalf("high-risk rows mismatch (-want +got):\n%s", diff)
	}

	loaded, err := dictstore.LoadDirectory(store.AutoPath())
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if diff := cmp.Diff(dir.Entries(), loaded.Entries()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if loaded.Version() != dir.Version() {
		t.Fatal("loaded directory should carry the same version")
	}

	raws, err := dictstore.LoadHighRisk(store.HighRiskPath())
	if err != nil {
		t.Fatalf("LoadHighRisk failed: %v", err)
	}
	if diff := cmp.Diff([]string{"FGHI"}, raws); diff != "" {
		t.Fatalf("high-risk mismatch (-want +got):\n%s", diff)
	}
}

func TestPublishFailsWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEnsuredDirectories())
	store := dictstore.New(cfg)

	holder := flock.New(filepath.Join(cfg.Paths.DictDir, ".rollcall.lock"))
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock failed: %v %v", ok, err)
	}
	defer holder.Unlock()

	_, err = store.Publish(context.Background(), buildDirectory(t, "ABC"), nil)
	if !errors.Is(err, dictstore.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, err := os.Stat(store.AutoPath()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("directory should not be written while locked: %v", err)
	}
}

func TestLockReleasedAfterPublish(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := dictstore.New(cfg)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := store.Publish(ctx, buildDirectory(t, "ABC"), nil); err != nil {
			t.Fatalf("Publish %d failed: %v", i, err)
		}
	}
	unlock, err := store.Lock()
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
}

func TestPublishFailureKeepsPreviousArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEnsuredDirectories())
	store := dictstore.New(cfg)
	ctx := context.Background()

	if _, err := store.Publish(ctx, buildDirectory(t, "ABC"), []string{"FGHI"}); err != nil {
		t.Fatalf("first Publish failed: %v", err)
	}
	before, err := os.ReadFile(store.AutoPath())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	// A directory in place of the high-risk file cannot be replaced.
	if err := os.Remove(store.HighRiskPath()); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(store.HighRiskPath(), "blocker"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	_, err = store.Publish(ctx, buildDirectory(t, "ABC", "XYZ"), nil)
	if !errors.Is(err, dictstore.ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	after, err := os.ReadFile(store.AutoPath())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("directory replaced despite failure:\n%s", after)
	}
}

func TestDecodeDirectoryAcceptsCuratedShape(t *testing.T) {
	input := "teacher_name,alias\n王小明,小明\n\n李大華,\n王小明,\n"
	dir, err := dictstore.DecodeDirectory(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeDirectory failed: %v", err)
	}
	want := []names.Entry{
		{Name: "王小明", Alias: "小明"},
		{Name: "李大華"},
	}
	if diff := cmp.Diff(want, dir.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if dir.MaxNameLen() != 3 {
		t.Fatalf("unexpected max len %d", dir.MaxNameLen())
	}
}

func TestDecodeDirectoryRequiresNameColumn(t *testing.T) {
	if _, err := dictstore.DecodeDirectory(strings.NewReader("teacher_id\nT001\n")); err == nil {
		t.Fatal("expected error without teacher_name column")
	}
}

func TestLoadSnapshotFallbacks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := dictstore.New(cfg)
	logPath := filepath.Join(t.TempDir(), "snapshot.log")
	logger, err := logging.New(logging.Options{Level: "warn", Outputs: []string{logPath}})
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}

	snap, err := store.LoadSnapshot(logger)
	if err != nil {
		t.Fatalf("LoadSnapshot empty failed: %v", err)
	}
	if snap.Source != dictstore.SourceEmpty || snap.Directory.Len() != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}

	if _, err := store.Publish(context.Background(), buildDirectory(t, "ABC"), nil); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	snap, err = store.LoadSnapshot(logger)
	if err != nil {
		t.Fatalf("LoadSnapshot auto failed: %v", err)
	}
	if snap.Source != dictstore.SourceAuto || !snap.Directory.Contains("ABC") {
		t.Fatalf("expected auto snapshot, got %+v", snap)
	}

	testsupport.WriteCSV(t, store.CuratedPath(), []string{"teacher_id", "teacher_name", "alias"},
		[]string{"T001", "王小明", ""},
	)
	snap, err = store.LoadSnapshot(logger)
	if err != nil {
		t.Fatalf("LoadSnapshot curated failed: %v", err)
	}
	if snap.Source != dictstore.SourceCurated || snap.Path != store.CuratedPath() || !snap.Directory.Contains("王小明") {
		t.Fatalf("expected curated snapshot, got %+v", snap)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	for _, want := range []string{"event_type=directory_fallback", "event_type=directory_empty"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in log:\n%s", want, data)
		}
	}
}

func TestLoadSnapshotRejectsBrokenCurated(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := dictstore.New(cfg)
	testsupport.WriteCSV(t, store.CuratedPath(), []string{"id_only"}, []string{"T001"})

	if _, err := store.LoadSnapshot(nil); err == nil {
		t.Fatal("expected error for curated file without teacher_name")
	}
}
