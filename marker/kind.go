package marker

import "github.com/erraggy/oasgen/oas"

// Kind identifies what a marker declares or refers to.
type Kind string

const (
	// KindSchema declares a reusable schema.
	KindSchema Kind = "schema"
	// KindResponse declares a reusable response.
	KindResponse Kind = "response"
	// KindRequestBody declares a reusable request body.
	KindRequestBody Kind = "request_body"
	// KindCallback declares a reusable callback.
	KindCallback Kind = "callback"
	// KindSecurityScheme declares a security scheme.
	KindSecurityScheme Kind = "security_scheme"
	// KindParameters declares a set of operation parameters.
	KindParameters Kind = "parameters"
	// KindTag declares a document tag.
	KindTag Kind = "tag"
	// KindExtension declares an x-* extension field.
	KindExtension Kind = "extension"
	// KindOperation carries operation metadata (operationId, summary, ...).
	KindOperation Kind = "operation"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{
	KindSchema,
	KindResponse,
	KindRequestBody,
	KindCallback,
	KindSecurityScheme,
	KindParameters,
	KindTag,
	KindExtension,
	KindOperation,
}

// DiscoverableKinds lists the kinds that have a declaration scope.
// Operation markers exist only as usages attached to routes.
var DiscoverableKinds = Kinds[:len(Kinds)-1]

// ComponentKinds lists the kinds that become entries under #/components/.
var ComponentKinds = []Kind{
	KindSchema,
	KindResponse,
	KindRequestBody,
	KindCallback,
	KindSecurityScheme,
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// IsComponent reports whether declarations of k are emitted under #/components/.
func (k Kind) IsComponent() bool {
	return k.Section() != ""
}

// Section returns the #/components/ section name for component kinds,
// or "" for other kinds.
func (k Kind) Section() string {
	switch k {
	case KindSchema:
		return oas.SectionSchemas
	case KindResponse:
		return oas.SectionResponses
	case KindRequestBody:
		return oas.SectionRequestBodies
	case KindCallback:
		return oas.SectionCallbacks
	case KindSecurityScheme:
		return oas.SectionSecuritySchemes
	}
	return ""
}

// ScopeDir returns the default scope directory name for k, relative to
// the project's openapi directory. Operation has none.
func (k Kind) ScopeDir() string {
	switch k {
	case KindSchema:
		return "schemas"
	case KindResponse:
		return "responses"
	case KindRequestBody:
		return "request_bodies"
	case KindCallback:
		return "callbacks"
	case KindSecurityScheme:
		return "security_schemes"
	case KindParameters:
		return "parameters"
	case KindTag:
		return "tags"
	case KindExtension:
		return "extensions"
	}
	return ""
}

// Suffix returns the type name suffix that name derivation strips for k,
// e.g. "Schema" for UserSchema.
func (k Kind) Suffix() string {
	switch k {
	case KindSchema:
		return "Schema"
	case KindResponse:
		return "Response"
	case KindRequestBody:
		return "RequestBody"
	case KindCallback:
		return "Callback"
	case KindSecurityScheme:
		return "SecurityScheme"
	case KindParameters:
		return "Parameters"
	case KindTag:
		return "Tag"
	case KindExtension:
		return "Extension"
	}
	return ""
}

// Ref builds the #/components/ reference to name for component kinds.
func (k Kind) Ref(name string) string {
	if s := k.Section(); s != "" {
		return oas.ComponentsPrefix + s + "/" + name
	}
	return ""
}

// AttrTarget is the attribute of an extension definition that selects the
// object it applies to. With value TargetDocument the extension is added
// to the document root; otherwise it applies only where it is used.
const AttrTarget = "target"

// TargetDocument is the AttrTarget value for document-level extensions.
const TargetDocument = "document"
