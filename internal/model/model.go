// Package model builds the normalized, short-lived reflection model
// (ClassModel / FieldModel / MethodModel) out of the raw clang.Cursor
// handles the front end and walker hand it. Every derived attribute is
// computed once, in the constructor — the model never outlives a single
// invocation, so there is no benefit to the teacher's lazy-property style
// here (see spec §9).
package model

import (
	"fmt"
	"strings"

	"github.com/go-clang/clang-v14/clang"

	"go.avalanche.dev/reflectgen/internal/hash"
	"go.avalanche.dev/reflectgen/internal/metadata"
)

// Kind mirrors the declaration's record kind. Unions are modeled but never
// selected by the walker (spec §9, open question on union handling).
type Kind string

const (
	KindClass  Kind = "class"
	KindStruct Kind = "struct"
	KindUnion  Kind = "union"
)

// Access is a normalized view of clang.AccessSpecifier.
type Access string

const (
	AccessInvalid   Access = "invalid"
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
	AccessNone      Access = "none"
)

// AccessError reports a reflected member (one carrying a non-nil metadata
// block) that is not public, per spec §7. The message format matches §6
// exactly: `FILE(LINE:COL): error: <kind> "<name>" access specifier
// expected "public", found "<actual>".`
type AccessError struct {
	File   string
	Line   uint32
	Column uint32
	Kind   string
	Name   string
	Actual Access
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s(%d:%d): error: %s %q access specifier expected \"public\", found %q.",
		e.File, e.Line, e.Column, e.Kind, e.Name, string(e.Actual))
}

// Class is the reflected unit built from one class/struct definition
// cursor.
type Class struct {
	Cursor clang.Cursor

	FullyQualifiedName string
	Namespace          string
	LeafName           string
	Kind               Kind
	DisplayName        string
	CamelCaseName      string
	MetaclassName      string
	MetastorageName    string
	TypeHash           uint64

	BaseClasses        []string
	BaseClassesFlatten []string
	DerivedFromObject  bool

	Fields        []*Field
	PublicFields  []*Field
	Methods       []*Method
	PublicMethods []*Method

	Metadata *metadata.Metadata
}

// Field wraps one field declaration of any access, back-referencing its
// class.
type Field struct {
	Class *Class
	Cursor clang.Cursor

	Name            string
	DecayedTypeName string
	Access          Access
	Metadata        *metadata.Metadata
	MetaclassName   string
	MetastorageName string
}

// Method wraps one method declaration of any access, back-referencing its
// class.
type Method struct {
	Class  *Class
	Cursor clang.Cursor

	Name            string
	ReturnType      string
	ParamTypenames  []string
	Access          Access
	Metadata        *metadata.Metadata
	MetaclassName   string
	MetastorageName string
}

// objectBaseName is the canonical spelling the engine's reflection root is
// expected to have.
const objectBaseName = "avalanche::Object"

// NewClass builds a Class model from a record definition cursor accepted by
// the walker. err is non-nil for an access-specifier violation (spec §7)
// or for a metadata block that fails to parse.
func NewClass(cursor clang.Cursor) (*Class, error) {
	fqn := cursor.Type().CanonicalType().Spelling()
	namespace, leaf := splitNamespace(fqn)
	camelCase := camelCaseName(fqn)
	metaclassName := camelCase + "MetaClass__internal__"

	classMeta, err := metadata.Extract(cursor.RawCommentText())
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", fqn, err)
	}

	c := &Class{
		Cursor:             cursor,
		FullyQualifiedName: fqn,
		Namespace:          namespace,
		LeafName:           leaf,
		Kind:               recordKind(cursor.Kind()),
		DisplayName:        cursor.Spelling(),
		CamelCaseName:      camelCase,
		MetaclassName:      metaclassName,
		MetastorageName:    metaclassName + "__MetaStorage",
		TypeHash:           hash.FNV1a64(fqn),
		Metadata:           classMeta,
	}

	directBases := directBaseSpecifiers(cursor)
	flattened := flattenBases(directBases)
	for _, b := range directBases {
		c.BaseClasses = append(c.BaseClasses, baseSpelling(b))
	}
	for _, b := range flattened {
		name := baseSpelling(b)
		c.BaseClassesFlatten = append(c.BaseClassesFlatten, name)
		if name == objectBaseName {
			c.DerivedFromObject = true
		}
	}

	if err := c.collectMembers(); err != nil {
		return nil, err
	}

	return c, nil
}

// Registered reports whether a class should be registered with the
// metaspace: it carries metadata, or it derives from avalanche::Object
// (spec §3 invariant 5).
func (c *Class) Registered() bool {
	return c.Metadata != nil || c.DerivedFromObject
}

func (c *Class) collectMembers() error {
	var memberErr error
	c.Cursor.Visit(func(cursor, parent clang.Cursor) clang.ChildVisitResult {
		if memberErr != nil {
			return clang.ChildVisit_Break
		}
		switch cursor.Kind() {
		case clang.Cursor_FieldDecl:
			f, err := newField(c, cursor)
			if err != nil {
				memberErr = err
				return clang.ChildVisit_Break
			}
			c.Fields = append(c.Fields, f)
			if f.Access == AccessPublic && f.Metadata != nil {
				c.PublicFields = append(c.PublicFields, f)
			}
		case clang.Cursor_CXXMethod:
			m, err := newMethod(c, cursor)
			if err != nil {
				memberErr = err
				return clang.ChildVisit_Break
			}
			c.Methods = append(c.Methods, m)
			if m.Access == AccessPublic && m.Metadata != nil {
				c.PublicMethods = append(c.PublicMethods, m)
			}
		}
		return clang.ChildVisit_Continue
	})
	return memberErr
}

func newField(owner *Class, cursor clang.Cursor) (*Field, error) {
	name := cursor.Spelling()
	access := normalizeAccess(cursor.AccessSpecifier())

	fieldMeta, err := metadata.Extract(cursor.RawCommentText())
	if err != nil {
		return nil, fmt.Errorf("field %s::%s: %w", owner.FullyQualifiedName, name, err)
	}

	if fieldMeta != nil && access != AccessPublic {
		return nil, newAccessError(cursor, "field", name, access)
	}

	f := &Field{
		Class:           owner,
		Cursor:          cursor,
		Name:            name,
		DecayedTypeName: decayedTypeSpelling(cursor.Type()),
		Access:          access,
		Metadata:        fieldMeta,
	}
	f.MetaclassName = fmt.Sprintf("%s_of_%sMetaField__internal__", owner.CamelCaseName, name)
	f.MetastorageName = f.MetaclassName + "__MetaStorage"
	return f, nil
}

func newMethod(owner *Class, cursor clang.Cursor) (*Method, error) {
	name := cursor.Spelling()
	access := normalizeAccess(cursor.AccessSpecifier())

	methodMeta, err := metadata.Extract(cursor.RawCommentText())
	if err != nil {
		return nil, fmt.Errorf("method %s::%s: %w", owner.FullyQualifiedName, name, err)
	}

	if methodMeta != nil && access != AccessPublic {
		return nil, newAccessError(cursor, "method", name, access)
	}

	m := &Method{
		Class:      owner,
		Cursor:     cursor,
		Name:       name,
		ReturnType: cursor.ResultType().Spelling(),
		Access:     access,
		Metadata:   methodMeta,
	}
	for i := uint32(0); i < uint32(cursor.NumArguments()); i++ {
		m.ParamTypenames = append(m.ParamTypenames, cursor.Argument(int32(i)).Type().Spelling())
	}
	m.MetaclassName = fmt.Sprintf("%s_of_%sMetaMethod__internal__", owner.CamelCaseName, name)
	m.MetastorageName = m.MetaclassName + "__MetaStorage"
	return m, nil
}

func newAccessError(cursor clang.Cursor, kind, name string, actual Access) error {
	file, line, col, _ := cursor.Location().FileLocation()
	return &AccessError{
		File:   file.Name(),
		Line:   line,
		Column: col,
		Kind:   kind,
		Name:   name,
		Actual: actual,
	}
}

func normalizeAccess(a clang.AccessSpecifier) Access {
	switch a {
	case clang.AccessSpecifier_Public:
		return AccessPublic
	case clang.AccessSpecifier_Protected:
		return AccessProtected
	case clang.AccessSpecifier_Private:
		return AccessPrivate
	case clang.AccessSpecifier_Invalid:
		return AccessInvalid
	default:
		return AccessNone
	}
}

func recordKind(k clang.CursorKind) Kind {
	switch k {
	case clang.Cursor_StructDecl:
		return KindStruct
	case clang.Cursor_UnionDecl:
		return KindUnion
	default:
		return KindClass
	}
}

// splitNamespace splits a canonical spelling at the last "::" (spec §3).
func splitNamespace(fqn string) (namespace, leaf string) {
	i := strings.LastIndex(fqn, "::")
	if i == -1 {
		return "", fqn
	}
	return fqn[:i], fqn[i+2:]
}

// camelCaseName builds the identifier used for generated class names: split
// the FQN on "::", upper-case each part's first letter, concatenate.
func camelCaseName(fqn string) string {
	parts := strings.Split(fqn, "::")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// directBaseSpecifiers returns the direct CXXBaseSpecifier children of a
// class definition cursor, in declaration order.
func directBaseSpecifiers(cursor clang.Cursor) []clang.Cursor {
	var bases []clang.Cursor
	cursor.Visit(func(c, parent clang.Cursor) clang.ChildVisitResult {
		if c.Kind() == clang.Cursor_CXXBaseSpecifier {
			bases = append(bases, c)
		}
		return clang.ChildVisit_Continue
	})
	return bases
}

// flattenBases walks the transitive closure of base specifiers reachable
// from direct, following both plain nested base specifiers and
// template-reference bases resolved back to their definition (spec §4.3,
// design notes on template-base resolution: a null definition is treated
// as "no further bases reachable").
func flattenBases(direct []clang.Cursor) []clang.Cursor {
	var result []clang.Cursor
	for _, b := range direct {
		result = append(result, b)
		result = append(result, nestedBasesOf(b)...)
	}
	return result
}

func nestedBasesOf(baseSpecifier clang.Cursor) []clang.Cursor {
	var result []clang.Cursor
	baseSpecifier.Visit(func(c, parent clang.Cursor) clang.ChildVisitResult {
		switch c.Kind() {
		case clang.Cursor_CXXBaseSpecifier:
			result = append(result, c)
			result = append(result, nestedBasesOf(c)...)
		case clang.Cursor_TemplateRef:
			def := c.Definition()
			if !def.IsNull() {
				for _, grandBase := range directBaseSpecifiers(def) {
					result = append(result, grandBase)
					result = append(result, nestedBasesOf(grandBase)...)
				}
			}
		}
		return clang.ChildVisit_Continue
	})
	return result
}

func baseSpelling(baseSpecifier clang.Cursor) string {
	return baseSpecifier.Type().CanonicalType().Spelling()
}

// decayedTypeSpelling strips pointer/reference qualification from t's
// canonical type, mirroring the pointer-stripped, decayed type the emitter
// needs to parameterize a FieldProxyStruct (spec §4.6).
func decayedTypeSpelling(t clang.Type) string {
	canon := t.CanonicalType()
	for {
		switch canon.Kind() {
		case clang.Type_Pointer, clang.Type_LValueReference, clang.Type_RValueReference:
			canon = canon.PointeeType().CanonicalType()
		default:
			return canon.Spelling()
		}
	}
}
