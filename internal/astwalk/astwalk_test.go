package astwalk

import (
	"github.com/go-clang/clang-v14/clang"
	"testing"
)

func TestIsRecordKind(t *testing.T) {
	cases := []struct {
		kind clang.CursorKind
		want bool
	}{
		{clang.Cursor_ClassDecl, true},
		{clang.Cursor_StructDecl, true},
		{clang.Cursor_UnionDecl, false},
		{clang.Cursor_EnumDecl, false},
		{clang.Cursor_Namespace, false},
	}
	for _, ex := range cases {
		if got := isRecordKind(ex.kind); got != ex.want {
			t.Errorf("isRecordKind(%v): expected %v, got %v", ex.kind, ex.want, got)
		}
	}
}
