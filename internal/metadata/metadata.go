// Package metadata extracts the `@avalanche::begin ... @avalanche::end`
// structured-config blocks embedded in C++ doc-comments and flattens them
// into a simple key/value map suitable for emission.
package metadata

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Kind tags the scalar type carried by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindList
)

// Value is a flattened metadata entry. Exactly one of the typed fields is
// meaningful, selected by Kind; List holds homogeneous scalar Values with
// Kind != KindList.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
}

// Metadata is the result of extracting and flattening one doc-comment's
// structured-config block. Keys follows declaration order where flatten can
// recover it (keys it cannot place come last, sorted); Values is keyed the
// same way.
type Metadata struct {
	Keys   []string
	Values map[string]Value
}

// Empty reports whether m carries no keys (the `@reflect`-with-no-body
// case, or an `@avalanche::begin/end` block with nothing inside).
func (m *Metadata) Empty() bool {
	return m == nil || len(m.Keys) == 0
}

var blockPattern = regexp.MustCompile(`(?s)@avalanche::begin(.*?)@avalanche::end`)

// Extract parses a cursor's raw doc-comment text and returns the reflection
// metadata it carries, or nil if the declaration is not reflected at all.
//
// See spec §4.4: a comment with neither `@avalanche::begin/end` nor
// `@reflect` yields (nil, nil) meaning "not reflected"; `@reflect` alone
// yields an empty, non-nil Metadata; a begin/end block is parsed as TOML
// and flattened.
func Extract(rawComment string) (*Metadata, error) {
	if m := blockPattern.FindStringSubmatch(rawComment); m != nil {
		body := stripCommentLeaders(m[1])
		doc := map[string]interface{}{}
		if err := toml.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("parsing metadata block: %w", err)
		}
		keys, values := flatten(doc, orderedKeys(body))
		return &Metadata{Keys: keys, Values: values}, nil
	}

	if strings.Contains(rawComment, "@reflect") {
		return &Metadata{Keys: nil, Values: map[string]Value{}}, nil
	}

	return nil, nil
}

// stripCommentLeaders removes leading whitespace and then a leading "///"
// from every line of a captured block, then trims the whole result.
// Whitespace after the "///" stays on the line.
func stripCommentLeaders(block string) string {
	lines := strings.Split(block, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimLeft(line, " \t")
		line = strings.TrimPrefix(line, "///")
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

var (
	tableHeaderPattern = regexp.MustCompile(`^\[([A-Za-z0-9_.]+)\]$`)
	assignPattern      = regexp.MustCompile(`^([A-Za-z0-9_.]+)\s*=`)
)

// orderedKeys does a best-effort line scan of the cleaned TOML body to
// recover the declaration order of top-level and [section]-qualified keys.
// TOML tables are unordered once decoded into a Go map, so this is the only
// way to reproduce the deterministic `keys()` ordering the spec's
// end-to-end scenarios rely on for the common (non-inline-table) case.
func orderedKeys(body string) []string {
	var section string
	var keys []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := tableHeaderPattern.FindStringSubmatch(line); m != nil {
			section = m[1]
			continue
		}
		if m := assignPattern.FindStringSubmatch(line); m != nil {
			key := m[1]
			if section != "" {
				key = section + "." + key
			}
			keys = append(keys, key)
		}
	}
	return keys
}

// flatten walks a decoded TOML document, joining nested table keys with
// "." and leaving lists as terminal values (spec §4.4: "flattening is
// shallow ... a list is a terminal value, not further flattened").
//
// hint carries the declaration order recovered by orderedKeys for the keys
// it could find; any key flatten discovers that isn't in hint (e.g. from an
// inline table) is appended afterward in sorted order, which keeps output
// deterministic even though it may not reflect true source order.
func flatten(doc map[string]interface{}, hint []string) ([]string, map[string]Value) {
	values := map[string]Value{}
	walk("", doc, values)

	seen := map[string]bool{}
	var keys []string
	for _, k := range hint {
		if _, ok := values[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range values {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	return keys, values
}

func walk(prefix string, doc map[string]interface{}, out map[string]Value) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			walk(key, val, out)
		default:
			out[key] = toValue(v)
		}
	}
}

func toValue(v interface{}) Value {
	switch val := v.(type) {
	case string:
		return Value{Kind: KindString, Str: val}
	case bool:
		return Value{Kind: KindBool, Bool: val}
	case int64:
		return Value{Kind: KindInt, Int: val}
	case int:
		return Value{Kind: KindInt, Int: int64(val)}
	case float64:
		return Value{Kind: KindFloat, Float: val}
	case []interface{}:
		list := make([]Value, 0, len(val))
		for _, item := range val {
			list = append(list, toValue(item))
		}
		return Value{Kind: KindList, List: list}
	default:
		return Value{Kind: KindString, Str: fmt.Sprintf("%v", val)}
	}
}
