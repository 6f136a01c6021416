// Package astwalk walks a parsed translation unit and selects the class and
// struct definitions reflectgen should build a model for.
package astwalk

import (
	"path/filepath"

	"github.com/go-clang/clang-v14/clang"

	"go.avalanche.dev/reflectgen/internal/model"
)

// Walk performs a post-order traversal of root's subtree, building a
// model.Class for every class/struct *definition* cursor whose canonical
// source file matches inputHeader exactly (spec §4.2: declarations pulled
// in transitively through #include are never selected, only definitions
// whose own file is the header being processed).
//
// Classes are returned in the order their definitions were encountered
// during the post-order walk, which is also their source declaration
// order for siblings (children of a class are visited, and thus modeled,
// before the class itself — matching the original depth-first-children-
// before-self traversal).
func Walk(root clang.Cursor, inputHeader string) ([]*model.Class, error) {
	wantPath, err := filepath.Abs(inputHeader)
	if err != nil {
		return nil, err
	}
	wantPath = filepath.Clean(wantPath)

	w := &walker{wantPath: wantPath}
	if err := w.visitChildren(root); err != nil {
		return nil, err
	}
	return w.classes, nil
}

type walker struct {
	wantPath string
	classes  []*model.Class
}

func (w *walker) visitChildren(cursor clang.Cursor) error {
	var err error
	cursor.Visit(func(c, parent clang.Cursor) clang.ChildVisitResult {
		if err != nil {
			return clang.ChildVisit_Break
		}
		if visitErr := w.visit(c); visitErr != nil {
			err = visitErr
			return clang.ChildVisit_Break
		}
		return clang.ChildVisit_Continue
	})
	return err
}

// visit recurses into c's children first (post-order), then, if c is itself
// an eligible class/struct definition, builds and records its model.
func (w *walker) visit(cursor clang.Cursor) error {
	if err := w.visitChildren(cursor); err != nil {
		return err
	}

	if !isRecordKind(cursor.Kind()) {
		return nil
	}
	if !cursor.IsDefinition() {
		return nil
	}
	if !w.definedInTargetFile(cursor) {
		return nil
	}

	cls, err := model.NewClass(cursor)
	if err != nil {
		return err
	}
	w.classes = append(w.classes, cls)
	return nil
}

func (w *walker) definedInTargetFile(cursor clang.Cursor) bool {
	file, _, _, _ := cursor.Location().FileLocation()
	name := file.Name()
	if name == "" {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return filepath.Clean(abs) == w.wantPath
}

func isRecordKind(k clang.CursorKind) bool {
	switch k {
	case clang.Cursor_ClassDecl, clang.Cursor_StructDecl:
		return true
	default:
		return false
	}
}
