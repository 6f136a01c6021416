package templates

// Header is the top-level template for the companion header: a
// self-contained, include-guarded file carrying only forward declarations
// and class_name<> trait specializations (spec §4.6).
const Header = `
{{- define "Header" -}}
#pragma once

#if !defined(DURING_BUILD_TOOL_PROCESS)

#pragma warning(push)
#pragma warning(disable : 4244 4267)

#include "avalanche/reflection/class.h"
#include "avalanche/reflection/metaspace.h"
#include "avalanche/reflection/field.h"
#include "avalanche/reflection/method.h"
#include "avalanche/reflection/dynamic_container.h"
#include "avalanche/reflection/polyfill.h"
#include <string_view>
#include <cstdint>

{{ range .Classes }}
{{ template "ClassForwardDeclaration" . }}
{{ end }}
#pragma warning(pop)

#endif  // !defined(DURING_BUILD_TOOL_PROCESS)
{{ end -}}

{{- define "ClassForwardDeclaration" -}}
{{ if .Namespace }}namespace {{ .Namespace }} { {{ end }}
{{ .Kind }} {{ .FQN | leaf }};
{{ if .Namespace }}}{{ end }}

namespace avalanche {
template <>
struct class_name<{{ .FQN }}> {
  static constexpr const char* value = "{{ .FQN }}";
  static constexpr bool primitive = false;
};
}  // namespace avalanche
{{ end -}}
`
