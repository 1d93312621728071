package oas

import "strings"

// Component section names as they appear under #/components/.
const (
	SectionSchemas         = "schemas"
	SectionResponses       = "responses"
	SectionRequestBodies   = "requestBodies"
	SectionCallbacks       = "callbacks"
	SectionSecuritySchemes = "securitySchemes"
	SectionParameters      = "parameters"
)

// ComponentsPrefix is the JSON pointer prefix of every local component reference.
const ComponentsPrefix = "#/components/"

// OAS 3.x reference prefixes
const (
	RefPrefixSchemas         = ComponentsPrefix + SectionSchemas + "/"
	RefPrefixResponses       = ComponentsPrefix + SectionResponses + "/"
	RefPrefixRequestBodies   = ComponentsPrefix + SectionRequestBodies + "/"
	RefPrefixCallbacks       = ComponentsPrefix + SectionCallbacks + "/"
	RefPrefixSecuritySchemes = ComponentsPrefix + SectionSecuritySchemes + "/"
	RefPrefixParameters      = ComponentsPrefix + SectionParameters + "/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

// ResponseRef builds "#/components/responses/{name}".
func ResponseRef(name string) string {
	return RefPrefixResponses + name
}

// RequestBodyRef builds "#/components/requestBodies/{name}".
func RequestBodyRef(name string) string {
	return RefPrefixRequestBodies + name
}

// CallbackRef builds "#/components/callbacks/{name}".
func CallbackRef(name string) string {
	return RefPrefixCallbacks + name
}

// SecuritySchemeRef builds "#/components/securitySchemes/{name}".
func SecuritySchemeRef(name string) string {
	return RefPrefixSecuritySchemes + name
}

// ParseComponentRef splits a local component reference into its section and
// name. ok is false for external references, references outside
// #/components/, and references with an empty name.
func ParseComponentRef(ref string) (section, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, ComponentsPrefix)
	if !found {
		return "", "", false
	}
	section, name, found = strings.Cut(rest, "/")
	if !found || section == "" || name == "" {
		return "", "", false
	}
	return section, unescapePointer(name), true
}

// unescapePointer reverses JSON pointer escaping (RFC 6901).
func unescapePointer(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
