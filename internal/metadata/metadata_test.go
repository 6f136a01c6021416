package metadata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractNoMarkerAtAll(t *testing.T) {
	m, err := Extract("/// just a regular comment")
	if err != nil {
		t.Fatal(err)
	}
	if m != nil {
		t.Errorf("expected nil metadata, got %+v", m)
	}
}

func TestExtractReflectOnly(t *testing.T) {
	m, err := Extract("/// @reflect")
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("expected non-nil empty metadata")
	}
	if !m.Empty() {
		t.Errorf("expected empty metadata, got %+v", m)
	}
}

func TestExtractBeginEndBlock(t *testing.T) {
	raw := "/// @avalanche::begin\n" +
		"/// foo = 1\n" +
		"/// bar = \"hi\"\n" +
		"/// @avalanche::end"

	m, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("expected non-nil metadata")
	}
	wantKeys := []string{"foo", "bar"}
	if diff := cmp.Diff(wantKeys, m.Keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if got := m.Values["foo"]; got.Kind != KindInt || got.Int != 1 {
		t.Errorf("foo: expected int 1, got %+v", got)
	}
	if got := m.Values["bar"]; got.Kind != KindString || got.Str != "hi" {
		t.Errorf("bar: expected string hi, got %+v", got)
	}
}

func TestExtractEmptyBeginEndBlock(t *testing.T) {
	raw := "/// @avalanche::begin\n/// @avalanche::end"
	m, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Empty() {
		t.Errorf("expected empty metadata, got %+v", m)
	}
}

func TestFlattenLaw(t *testing.T) {
	raw := "/// @avalanche::begin\n" +
		"/// a = { b = { c = 1 } }\n" +
		"/// @avalanche::end"
	m, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Values) != 1 {
		t.Fatalf("expected exactly one flattened key, got %v", m.Values)
	}
	got, ok := m.Values["a.b.c"]
	if !ok {
		t.Fatalf("expected key a.b.c, got %v", m.Values)
	}
	if got.Kind != KindInt || got.Int != 1 {
		t.Errorf("a.b.c: expected int 1, got %+v", got)
	}
}

func TestFlattenListIsTerminal(t *testing.T) {
	raw := "/// @avalanche::begin\n" +
		"/// tags = [\"x\", \"y\"]\n" +
		"/// @avalanche::end"
	m, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := m.Values["tags"]
	if !ok || got.Kind != KindList {
		t.Fatalf("expected list value for tags, got %+v", got)
	}
	if len(got.List) != 2 || got.List[0].Str != "x" || got.List[1].Str != "y" {
		t.Errorf("unexpected list contents: %+v", got.List)
	}
}
