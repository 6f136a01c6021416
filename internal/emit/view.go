// Package emit renders the companion header/source pair for a set of
// reflected classes using text/template, in the same named-block,
// accumulate-then-execute style the teacher's FIDL backends use.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"go.avalanche.dev/reflectgen/internal/metadata"
	"go.avalanche.dev/reflectgen/internal/model"
)

// Tree is the top-level value executed against the "Header" and "Source"
// templates.
type Tree struct {
	InputHeader string
	OutHeader   string
	RunID       string
	Classes     []*ClassView
}

// ClassView is the emission-ready projection of a model.Class: the values a
// template needs are pre-formatted here, except the leaf name, which the
// templates derive from FQN with the "leaf" function (mirrors the teacher's ir.Compile style of pushing formatting
// into Go rather than the template language).
type ClassView struct {
	FQN                string
	Namespace          string
	Kind               string
	MetaclassName      string
	MetastorageName    string
	TypeHashLiteral    string
	BaseClassesFlatten []string
	DerivedFromObject  bool

	Metadata MetadataView
	Fields   []FieldView
	Methods  []MethodView
}

// MetadataView is the emission-ready projection of a metadata.Metadata.
type MetadataView struct {
	Keys    []string
	Entries []MetadataEntryView
}

// MetadataEntryView is one flattened metadata key, formatted as a C++
// typed literal per spec §4.6: integer/float as a typed constant, bool as
// a literal, list as a single ';'-joined string_view, string as a
// string_view literal.
type MetadataEntryView struct {
	Key      string
	CppType  string
	CppValue string
}

// FieldView is the emission-ready projection of a model.Field.
type FieldView struct {
	Name            string
	DecayedTypeName string
	MetaclassName   string
	MetastorageName string
	Metadata        MetadataView
}

// MethodView is the emission-ready projection of a model.Method.
type MethodView struct {
	Name            string
	ReturnType      string
	ParamTypenames  []string
	MetaclassName   string
	MetastorageName string
	Metadata        MetadataView
}

// BuildTree converts the classes the walker selected into a Tree, skipping
// any class that is not registered (spec §3 invariant 5).
func BuildTree(inputHeader, outHeader, runID string, classes []*model.Class) *Tree {
	t := &Tree{InputHeader: inputHeader, OutHeader: outHeader, RunID: runID}
	for _, c := range classes {
		if !c.Registered() {
			continue
		}
		t.Classes = append(t.Classes, buildClassView(c))
	}
	return t
}

func buildClassView(c *model.Class) *ClassView {
	cv := &ClassView{
		FQN:                c.FullyQualifiedName,
		Namespace:          c.Namespace,
		Kind:               string(c.Kind),
		MetaclassName:      c.MetaclassName,
		MetastorageName:    c.MetastorageName,
		TypeHashLiteral:    strconv.FormatUint(c.TypeHash, 10) + "ULL",
		BaseClassesFlatten: c.BaseClassesFlatten,
		DerivedFromObject:  c.DerivedFromObject,
		Metadata:           buildMetadataView(c.Metadata),
	}
	for _, f := range c.PublicFields {
		cv.Fields = append(cv.Fields, FieldView{
			Name:            f.Name,
			DecayedTypeName: f.DecayedTypeName,
			MetaclassName:   f.MetaclassName,
			MetastorageName: f.MetastorageName,
			Metadata:        buildMetadataView(f.Metadata),
		})
	}
	for _, m := range c.PublicMethods {
		cv.Methods = append(cv.Methods, MethodView{
			Name:            m.Name,
			ReturnType:      m.ReturnType,
			ParamTypenames:  m.ParamTypenames,
			MetaclassName:   m.MetaclassName,
			MetastorageName: m.MetastorageName,
			Metadata:        buildMetadataView(m.Metadata),
		})
	}
	return cv
}

func buildMetadataView(m *metadata.Metadata) MetadataView {
	v := MetadataView{}
	if m == nil {
		return v
	}
	for _, k := range m.Keys {
		v.Keys = append(v.Keys, k)
		v.Entries = append(v.Entries, MetadataEntryView{
			Key:      k,
			CppType:  cppType(m.Values[k]),
			CppValue: cppLiteral(m.Values[k]),
		})
	}
	return v
}

func cppType(v metadata.Value) string {
	switch v.Kind {
	case metadata.KindInt:
		return "int32_t"
	case metadata.KindFloat:
		return "float"
	case metadata.KindBool:
		return "bool"
	default:
		return "string_view"
	}
}

func cppLiteral(v metadata.Value) string {
	switch v.Kind {
	case metadata.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case metadata.KindFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 32)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s + "f"
	case metadata.KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case metadata.KindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = scalarString(item)
		}
		return quoteCpp(strings.Join(parts, ";"))
	default:
		return quoteCpp(v.Str)
	}
}

func scalarString(v metadata.Value) string {
	switch v.Kind {
	case metadata.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case metadata.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 32)
	case metadata.KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

func quoteCpp(s string) string {
	return fmt.Sprintf("%q", s)
}
