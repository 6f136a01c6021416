package templates

// Source is the top-level template for the companion source file: per-class
// metadata storage, field/method/class reflection classes, and a
// registration function + static registrar (spec §4.6).
const Source = `
{{- define "Source" -}}
#include "{{ .OutHeader }}"
#include <cassert>
#include "{{ .InputHeader }}"

using namespace avalanche;

{{ range .Classes }}
{{ $c := . }}
{{ template "MetadataStorage" (metadataArgs .Metadata $c.FQN .MetastorageName) }}
{{ range .Fields }}
{{ template "MetadataStorage" (metadataArgs .Metadata $c.FQN .MetastorageName) }}
{{ end }}
{{ range .Methods }}
{{ template "MetadataStorage" (metadataArgs .Metadata $c.FQN .MetastorageName) }}
{{ end }}
{{ range .Fields }}
{{ template "FieldReflection" (fieldArgs . $c) }}
{{ end }}
{{ range .Methods }}
{{ template "MethodReflection" (methodArgs . $c) }}
{{ end }}
{{ template "ClassReflection" . }}
{{ end }}

{{ template "Registration" . }}
{{ end -}}

{{- define "MetadataStorage" -}}
namespace avalanche::generated {
class {{ .StorageName }} : public IMetadataKeyValueStorage {
 public:
  Class* get_declaring_class() const override {
    return Class::for_name(class_name_v<{{ .OwnerFQN }}>);
  }
  void keys(size_t* out_count, const string_view** out_keys) const override {
{{- if .Entries }}
    static constexpr string_view kKeys[] = { {{ range .Entries }}"{{ .Key }}", {{ end }} };
    *out_count = {{ len .Entries }};
    *out_keys = kKeys;
{{- else }}
    *out_count = 0;
    *out_keys = nullptr;
{{- end }}
  }
  const DynamicContainerBase* get(string_view key) const override {
{{- range .Entries }}
    if (key == "{{ .Key }}") {
      static constexpr {{ .CppType }} kValue = {{ .CppValue }};
      static GenericDynamicContainer<{{ .CppType }}> kContainer(kValue);
      return &kContainer;
    }
{{- end }}
    return nullptr;
  }
};
}  // namespace avalanche::generated
{{ end -}}

{{- define "FieldReflection" -}}
namespace avalanche::generated {
class {{ .Field.MetaclassName }} : public avalanche::Field {
 public:
  Chimera get(Chimera object) const override {
    assert(object.get_class() == Class::for_name(class_name_v<{{ .Class.FQN }}>));
    auto* obj = reinterpret_cast<{{ .Class.FQN }}*>(object.data());
    return Chimera(FieldProxyStruct<{{ .Field.DecayedTypeName }}>(&obj->{{ .Field.Name }}));
  }
  Class* get_declaring_class() const override {
    return Class::for_name(class_name_v<{{ .Class.FQN }}>);
  }
  string_view get_name() const override { return "{{ .Field.Name }}"; }
  const IMetadataKeyValueStorage* get_metadata() const override {
    static {{ .Field.MetastorageName }} kStorage;
    return &kStorage;
  }
};
}  // namespace avalanche::generated
{{ end -}}

{{- define "MethodReflection" -}}
namespace avalanche::generated {
class {{ .Method.MetaclassName }} : public avalanche::Method {
 public:
  size_t arg_hash() const override {
    return arg_package_hash_v<{{ range $i, $t := .Method.ParamTypenames }}{{ if $i }}, {{ end }}remove_cvref_t<{{ $t }}>{{ end }}>;
  }
  Class* get_declaring_class() const override {
    return Class::for_name(class_name_v<{{ .Class.FQN }}>);
  }
  string_view get_name() const override { return "{{ .Method.Name }}"; }
  const IMetadataKeyValueStorage* get_metadata() const override {
    static {{ .Method.MetastorageName }} kStorage;
    return &kStorage;
  }
};
}  // namespace avalanche::generated
{{ end -}}

{{- define "ClassReflection" -}}
namespace avalanche::generated {
class {{ .MetaclassName }} : public avalanche::Class {
 public:
  string_view full_name() const override { return "{{ .FQN }}"; }
  std::string full_name_str() const override { return "{{ .FQN }}"; }
  uint64_t hash() const override { return {{ .TypeHashLiteral }}; }
  void base_classes(size_t* out_count, const string_view** out_names) const override {
{{- if .BaseClassesFlatten }}
    static constexpr string_view kBases[] = { {{ range .BaseClassesFlatten }}"{{ . }}", {{ end }} };
    *out_count = {{ len .BaseClassesFlatten }};
    *out_names = kBases;
{{- else }}
    *out_count = 0;
    *out_names = nullptr;
{{- end }}
  }
  bool is_derived_from_object() const override { return {{ if .DerivedFromObject }}true{{ else }}false{{ end }}; }
  void fields(size_t* out_count, Field* const** out_array) const override {
{{- range .Fields }}
    static {{ .MetaclassName }} k{{ .MetaclassName }};
{{- end }}
{{- if .Fields }}
    static Field* const kFields[] = { {{ range .Fields }}&k{{ .MetaclassName }}, {{ end }} };
    *out_count = {{ len .Fields }};
    *out_array = kFields;
{{- else }}
    *out_count = 0;
    *out_array = nullptr;
{{- end }}
  }
  void methods(size_t* out_count, Method* const** out_array) const override {
{{- range .Methods }}
    static {{ .MetaclassName }} k{{ .MetaclassName }};
{{- end }}
{{- if .Methods }}
    static Method* const kMethods[] = { {{ range .Methods }}&k{{ .MetaclassName }}, {{ end }} };
    *out_count = {{ len .Methods }};
    *out_array = kMethods;
{{- else }}
    *out_count = 0;
    *out_array = nullptr;
{{- end }}
  }
  const IMetadataKeyValueStorage* get_metadata() const override {
    static {{ .MetastorageName }} kStorage;
    return &kStorage;
  }
};
}  // namespace avalanche::generated
{{ end -}}

{{- define "Registration" -}}
namespace avalanche::generated {
avalanche::MetaSpaceProxy {{ .RunID }}_create_metaspace_internal__() {
  auto result = avalanche::MetaSpace::get().create();
{{- range .Classes }}
  result->register_class(new {{ .MetaclassName }}());
{{- end }}
  return result;
}

static avalanche::MetaSpaceProxy G_{{ .RunID }}_METASPACE_ = {{ .RunID }}_create_metaspace_internal__();
}  // namespace avalanche::generated
{{ end -}}
`
