package textutil_test

import (
	"testing"

	"rollcall/internal/textutil"
)

func TestGetNormalizer(t *testing.T) {
	cases := []struct {
		mode  string
		input string
		want  string
	}{
		{"", "ＡＢＣ", "ＡＢＣ"},
		{"none", "王小明", "王小明"},
		{"nfc", "e\u0301", "\u00e9"},
		{"NFKC", "ＡＢＣ", "ABC"},
		{"nfkc", "王小明", "王小明"},
	}
	for _, tc := range cases {
		fn, err := textutil.GetNormalizer(tc.mode)
		if err != nil {
			t.Fatalf("GetNormalizer(%q) failed: %v", tc.mode, err)
		}
		if got := fn(tc.input); got != tc.want {
			t.Fatalf("mode %q: got %q want %q", tc.mode, got, tc.want)
		}
	}
}

func TestGetNormalizerRejectsUnknownMode(t *testing.T) {
	if _, err := textutil.GetNormalizer("lowercase"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
