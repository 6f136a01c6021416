package emit

import (
	"strings"
	"text/template"

	"go.avalanche.dev/reflectgen/internal/emit/templates"
)

// Emitter owns the parsed template set. It is stateless across runs; one
// instance can be reused for multiple invocations.
type Emitter struct {
	tmpls *template.Template
}

// New parses every named template block into a single *template.Template,
// mirroring the teacher's NewFidlGenerator.
func New() *Emitter {
	tmpls := template.New("ReflectgenTemplates").Funcs(template.FuncMap{
		"leaf":         leafName,
		"metadataArgs": newMetadataArgs,
		"fieldArgs":    newFieldArgs,
		"methodArgs":   newMethodArgs,
	})
	template.Must(tmpls.Parse(templates.Header))
	template.Must(tmpls.Parse(templates.Source))
	return &Emitter{tmpls: tmpls}
}

// Header renders the companion header blob for tree.
func (e *Emitter) Header(tree *Tree) (string, error) {
	var sb strings.Builder
	if err := e.tmpls.ExecuteTemplate(&sb, "Header", tree); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Source renders the companion source blob for tree.
func (e *Emitter) Source(tree *Tree) (string, error) {
	var sb strings.Builder
	if err := e.tmpls.ExecuteTemplate(&sb, "Source", tree); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func leafName(fqn string) string {
	i := strings.LastIndex(fqn, "::")
	if i == -1 {
		return fqn
	}
	return fqn[i+2:]
}

// metadataArgsT bundles what the "MetadataStorage" template needs for one
// declaration's metadata (the class itself, or one of its public members).
type metadataArgsT struct {
	Entries     []MetadataEntryView
	OwnerFQN    string
	StorageName string
}

func newMetadataArgs(m MetadataView, ownerFQN, storageName string) metadataArgsT {
	return metadataArgsT{Entries: m.Entries, OwnerFQN: ownerFQN, StorageName: storageName}
}

// fieldArgsT bundles what "FieldReflection" needs: the field plus its
// owning class (for the declaring-class / reinterpret_cast target).
type fieldArgsT struct {
	Field FieldView
	Class *ClassView
}

func newFieldArgs(f FieldView, c *ClassView) fieldArgsT {
	return fieldArgsT{Field: f, Class: c}
}

// methodArgsT is the method analogue of fieldArgsT.
type methodArgsT struct {
	Method MethodView
	Class  *ClassView
}

func newMethodArgs(m MethodView, c *ClassView) methodArgsT {
	return methodArgsT{Method: m, Class: c}
}
