// Package frontend drives libclang over a single annotated header and
// hands back a traversable translation unit. It is the only package in
// this module that touches the C++ semantic front end; everything
// downstream works off the clang.Cursor handles it returns.
package frontend

import (
	"fmt"
	"os"

	"github.com/go-clang/clang-v14/clang"
)

// dialect is fixed at C++20 or newer per spec §4.1; the inputs are headers
// reflectgen drives standalone, never as part of a full build.
const dialect = "-std=c++20"

// Options configures a single invocation of the front end.
type Options struct {
	InputHeader  string
	IncludePaths []string
}

// TranslationUnit owns both the parsed AST and the index it was parsed
// into; Dispose releases both exactly once, in the reverse order they were
// created.
type TranslationUnit struct {
	index clang.Index
	tu    clang.TranslationUnit
}

// Parse reads InputHeader from disk, feeds it to libclang as an unsaved
// buffer keyed by its own path (so the front end sees it verbatim rather
// than re-reading from disk), and builds a semantic AST with function
// bodies skipped — only declarations are needed for reflection.
func Parse(opts Options) (*TranslationUnit, error) {
	content, err := os.ReadFile(opts.InputHeader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.InputHeader, err)
	}

	args := []string{
		"-x", "c++", dialect,
		"-Wno-pragma-once-outside-header",
		"-DDURING_BUILD_TOOL_PROCESS=1",
	}
	for _, p := range filterEmpty(opts.IncludePaths) {
		args = append(args, "-I"+p)
	}

	unsaved := []clang.UnsavedFile{
		clang.NewUnsavedFile(opts.InputHeader, string(content)),
	}

	idx := clang.NewIndex(0, 0)

	options := clang.DefaultEditingTranslationUnitOptions() |
		uint32(clang.TranslationUnit_SkipFunctionBodies)

	var tu clang.TranslationUnit
	if code := idx.ParseTranslationUnit2(opts.InputHeader, args, unsaved, options, &tu); code != clang.Error_Success {
		idx.Dispose()
		return nil, fmt.Errorf("parsing %s: front end returned %s", opts.InputHeader, code.Spelling())
	}

	for _, d := range tu.Diagnostics() {
		if d.Severity() == clang.Diagnostic_Fatal {
			msg := d.Spelling()
			tu.Dispose()
			idx.Dispose()
			return nil, fmt.Errorf("fatal diagnostic in %s: %s", opts.InputHeader, msg)
		}
	}

	return &TranslationUnit{index: idx, tu: tu}, nil
}

// Cursor returns the translation-unit root cursor the walker starts from.
func (t *TranslationUnit) Cursor() clang.Cursor {
	return t.tu.TranslationUnitCursor()
}

// Dispose releases the translation unit and its owning index.
func (t *TranslationUnit) Dispose() {
	t.tu.Dispose()
	t.index.Dispose()
}

// filterEmpty drops every empty entry from paths (spec §9: the include
// path list, typically produced by splitting a ';'-separated flag
// upstream, may contain repeated empty entries — all of them must be
// discarded, not just the first).
func filterEmpty(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
