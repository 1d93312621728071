// Package marker defines the declarative markers that oasgen assembles into
// an OpenAPI document.
//
// A marker is attached to a code element (a type, a method, or a route
// group) and is described by a [Declaration]. A declaration either declares
// a definition, such as a schema or a security scheme, or uses one through
// Ref. Declarations are produced by collaborators: YAML marker files,
// OpenAPI fragments, Go source directives, or explicit registration.
//
// # Kinds
//
// Component kinds (schema, response, request_body, callback,
// security_scheme) become entries under #/components/. Parameters,
// tag, and extension declarations are attached to operations or the
// document. Operation markers only appear as usages on routes.
//
// # Factories
//
// The body of a declared definition is built by its Factory, whose type
// depends on the kind:
//
//	decl := marker.Declaration{
//	    ID:   marker.Identity{Type: "example.com/app/models.UserSchema"},
//	    Kind: marker.KindSchema,
//	    Factory: marker.SchemaFunc(func() (*oas.Schema, error) {
//	        return &oas.Schema{Type: "object"}, nil
//	    }),
//	}
//
// # Precedence
//
// Usage markers on a route are resolved per slot with method markers
// overriding class markers, which override group markers. Between group
// markers the deeper group wins, and at equal level and depth the marker
// listed first wins.
package marker
