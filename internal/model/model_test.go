package model

import "testing"

func TestSplitNamespace(t *testing.T) {
	cases := []struct {
		fqn       string
		namespace string
		leaf      string
	}{
		{"Point", "", "Point"},
		{"ns::Point", "ns", "Point"},
		{"outer::inner::Point", "outer::inner", "Point"},
	}
	for _, ex := range cases {
		ns, leaf := splitNamespace(ex.fqn)
		if ns != ex.namespace || leaf != ex.leaf {
			t.Errorf("splitNamespace(%q): expected (%q, %q), got (%q, %q)", ex.fqn, ex.namespace, ex.leaf, ns, leaf)
		}
	}
}

func TestCamelCaseName(t *testing.T) {
	cases := []struct {
		fqn  string
		want string
	}{
		{"Point", "Point"},
		{"ns::Point", "NsPoint"},
		{"outer::inner::point", "OuterInnerPoint"},
	}
	for _, ex := range cases {
		if got := camelCaseName(ex.fqn); got != ex.want {
			t.Errorf("camelCaseName(%q): expected %q, got %q", ex.fqn, ex.want, got)
		}
	}
}

func TestAccessErrorMessage(t *testing.T) {
	err := &AccessError{
		File:   "foo.h",
		Line:   12,
		Column: 3,
		Kind:   "field",
		Name:   "bar",
		Actual: AccessPrivate,
	}
	want := `foo.h(12:3): error: field "bar" access specifier expected "public", found "private".`
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
