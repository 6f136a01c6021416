package astwalk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.avalanche.dev/reflectgen/internal/frontend"
	"go.avalanche.dev/reflectgen/internal/model"
)

// parseAndWalk drops content into a fresh temp header and drives it all the
// way through the front end and the walker, the way reflectgen's own
// `binding` subcommand does.
func parseAndWalk(t *testing.T, content string) ([]*model.Class, error) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.h")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tu, err := frontend.Parse(frontend.Options{InputHeader: path})
	if err != nil {
		return nil, err
	}
	defer tu.Dispose()

	return Walk(tu.Cursor(), path)
}

// TestE1ClassWithStructuredMetadata exercises spec §8 scenario E1: a class
// whose doc-comment carries a full @avalanche::begin/end block.
func TestE1ClassWithStructuredMetadata(t *testing.T) {
	classes, err := parseAndWalk(t, `
namespace ns {
/// @avalanche::begin
/// foo = 1
/// bar = "hi"
/// @avalanche::end
struct Point {
 public:
  int x;
  int y;
};
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("expected exactly 1 class, got %d: %+v", len(classes), classes)
	}

	c := classes[0]
	if c.FullyQualifiedName != "ns::Point" {
		t.Errorf("expected FQN ns::Point, got %q", c.FullyQualifiedName)
	}
	if c.Metadata == nil || c.Metadata.Empty() {
		t.Fatalf("expected non-empty metadata, got %+v", c.Metadata)
	}
	if len(c.Metadata.Keys) != 2 || c.Metadata.Keys[0] != "foo" || c.Metadata.Keys[1] != "bar" {
		t.Errorf("expected keys [foo bar] in order, got %v", c.Metadata.Keys)
	}
	if c.DerivedFromObject {
		t.Errorf("Point does not derive from avalanche::Object, got DerivedFromObject=true")
	}
	if !c.Registered() {
		t.Errorf("expected Point to be registered (carries metadata)")
	}
	if len(c.PublicFields) != 0 {
		t.Errorf("expected no public fields (x/y carry no per-field metadata), got %+v", c.PublicFields)
	}
}

// TestE2ClassDerivedFromObject exercises spec §8 scenario E2: a class with
// no reflection comment at all, registered solely because it derives from
// avalanche::Object.
func TestE2ClassDerivedFromObject(t *testing.T) {
	classes, err := parseAndWalk(t, `
namespace avalanche {
class Object {
 public:
  virtual ~Object() = default;
};
}

struct Bar : avalanche::Object {};
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var bar *model.Class
	for _, c := range classes {
		if c.FullyQualifiedName == "Bar" {
			bar = c
		}
	}
	if bar == nil {
		t.Fatalf("expected to find class Bar among %+v", classes)
	}
	if !bar.DerivedFromObject {
		t.Errorf("expected Bar.DerivedFromObject == true")
	}
	if !bar.Registered() {
		t.Errorf("expected Bar to be registered via derived_from_object")
	}
	if !bar.Metadata.Empty() {
		t.Errorf("expected Bar to carry no metadata keys, got %+v", bar.Metadata)
	}
	if len(bar.Fields) != 0 || len(bar.Methods) != 0 {
		t.Errorf("expected Bar to have no fields/methods, got fields=%+v methods=%+v", bar.Fields, bar.Methods)
	}
}

// TestE3PrivateReflectedFieldIsAccessError exercises spec §8 scenario E3: a
// private field carrying @avalanche::begin/end must fail the build with an
// access-specifier error at that field's location.
func TestE3PrivateReflectedFieldIsAccessError(t *testing.T) {
	_, err := parseAndWalk(t, `
struct Leaky {
 private:
  /// @avalanche::begin
  /// secret = 1
  /// @avalanche::end
  int hidden;
};
`)
	if err == nil {
		t.Fatal("expected an access-specifier error, got nil")
	}

	var accessErr *model.AccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("expected a *model.AccessError, got %T: %v", err, err)
	}
	if accessErr.Name != "hidden" {
		t.Errorf("expected error about field hidden, got %q", accessErr.Name)
	}
	if accessErr.Actual != model.AccessPrivate {
		t.Errorf("expected actual access private, got %q", accessErr.Actual)
	}
}
