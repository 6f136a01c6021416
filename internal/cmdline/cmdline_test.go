package cmdline

import "testing"

func TestSplitIncludePaths(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a;b", []string{"a", "b"}},
		{"a;;b", []string{"a", "", "b"}},
	}
	for _, ex := range cases {
		got := SplitIncludePaths(ex.raw)
		if len(got) != len(ex.want) {
			t.Fatalf("SplitIncludePaths(%q): expected %v, got %v", ex.raw, ex.want, got)
		}
		for i := range got {
			if got[i] != ex.want[i] {
				t.Errorf("SplitIncludePaths(%q)[%d]: expected %q, got %q", ex.raw, i, ex.want[i], got[i])
			}
		}
	}
}

func TestNewRunIDShapeAndUniqueness(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	if len(a) != runIDLength {
		t.Fatalf("expected length %d, got %d (%q)", runIDLength, len(a), a)
	}
	for _, r := range a {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			t.Fatalf("run id contains non-letter rune %q in %q", r, a)
		}
	}
	if a == b {
		t.Errorf("expected two calls to NewRunID to differ (got %q twice)", a)
	}
}
