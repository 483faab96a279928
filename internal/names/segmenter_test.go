package names_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rollcall/internal/names"
)

func scenarioDirectory(t *testing.T) *names.Directory {
	t.Helper()
	dir, err := names.BuildDirectory([]string{"ABC", "DE"}, names.DefaultIDFormat())
	if err != nil {
		t.Fatalf("BuildDirectory failed: %v", err)
	}
	return dir
}

func TestSplitScenarioC(t *testing.T) {
	seg := names.NewSegmenter(scenarioDirectory(t), names.SegmenterOptions{})
	if seg.MaxLen() != 3 {
		t.Fatalf("expected max len 3, got %d", seg.MaxLen())
	}
	if diff := cmp.Diff([]string{"ABC", "DE"}, seg.Split("ABCDE")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitScenarioDDropsUnmatchedCharacters(t *testing.T) {
	seg := names.NewSegmenter(scenarioDirectory(t), names.SegmenterOptions{})
	if diff := cmp.Diff([]string{"DE"}, seg.Split("ABXDE")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPrefersLongestWindow(t *testing.T) {
	dir := names.NewDirectory([]names.Entry{{Name: "歐陽"}, {Name: "歐陽小明"}, {Name: "王小明"}})
	seg := names.NewSegmenter(dir, names.SegmenterOptions{})
	if diff := cmp.Diff([]string{"歐陽小明", "王小明"}, seg.Split("歐陽小明王小明")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitNeverMatchesSingleCharacters(t *testing.T) {
	dir := names.NewDirectory([]names.Entry{{Name: "A"}, {Name: "BC"}})
	seg := names.NewSegmenter(dir, names.SegmenterOptions{})
	if diff := cmp.Diff([]string{"BC"}, seg.Split("ABC")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPlaceholderBypassesScan(t *testing.T) {
	dir := names.NewDirectory([]names.Entry{{Name: "校外"}})
	seg := names.NewSegmenter(dir, names.SegmenterOptions{Placeholders: names.DefaultPlaceholders()})
	if diff := cmp.Diff([]string{"校際教"}, seg.Split(" 校外教師 ")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitConfirmedNamesAlone(t *testing.T) {
	dir := scenarioDirectory(t)
	seg := names.NewSegmenter(dir, names.SegmenterOptions{})
	for _, name := range dir.Names() {
		if diff := cmp.Diff([]string{name}, seg.Split(name)); diff != "" {
			t.Fatalf("%s: split mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestSegmenterEmptyDirectoryUsesFallbackWindow(t *testing.T) {
	seg := names.NewSegmenter(nil, names.SegmenterOptions{})
	if seg.MaxLen() != names.DefaultMaxLen {
		t.Fatalf("expected default max len, got %d", seg.MaxLen())
	}
	seg = names.NewSegmenter(names.EmptyDirectory(), names.SegmenterOptions{FallbackMaxLen: 6})
	if seg.MaxLen() != 6 {
		t.Fatalf("expected fallback max len 6, got %d", seg.MaxLen())
	}
	if got := seg.Split("ABCDE"); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestTeacherListFallsBackToRawValue(t *testing.T) {
	seg := names.NewSegmenter(scenarioDirectory(t), names.SegmenterOptions{})
	if diff := cmp.Diff([]string{"QRS"}, seg.TeacherList(" QRS ")); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if got := seg.TeacherList("   "); got != nil {
		t.Fatalf("expected nil list for blank value, got %v", got)
	}
	if diff := cmp.Diff([]string{"DE"}, seg.TeacherList("ABXDE")); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinUsesSeparator(t *testing.T) {
	seg := names.NewSegmenter(scenarioDirectory(t), names.SegmenterOptions{})
	if got := seg.Join("ABCDE"); got != "ABC, DE" {
		t.Fatalf("unexpected join %q", got)
	}
	seg = names.NewSegmenter(scenarioDirectory(t), names.SegmenterOptions{Separator: "|"})
	if got := seg.Join("DEABC"); got != "DE|ABC" {
		t.Fatalf("unexpected join %q", got)
	}
}

func TestSegmenterConcurrentUse(t *testing.T) {
	seg := names.NewSegmenter(scenarioDirectory(t), names.SegmenterOptions{})
	input := strings.Repeat("ABCDE", 50)
	want := seg.Split(input)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if diff := cmp.Diff(want, seg.Split(input)); diff != "" {
				t.Errorf("concurrent split differs:\n%s", diff)
			}
		}()
	}
	wg.Wait()
}
