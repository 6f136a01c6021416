package modulelist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteRendersModulesAndDropsEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "enabled_modules.h")

	if err := Write(out, "physics;;rendering"); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(content)
	for _, want := range []string{`"physics"`, `"rendering"`, "count = 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestWriteEmptyModuleList(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "enabled_modules.h")

	if err := Write(out, ""); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "count = 0") {
		t.Errorf("expected empty module list, got:\n%s", content)
	}
}
