// Package scan finds oasgen directives in Go source and renders the Go
// code that registers them.
//
// Directives are line comments of the form
//
//	//openapi:<kind> [ref] [key=value ...]
//	//openapi:route METHOD /path [collections=a,b]
//
// On a type, a directive without a positional argument declares a
// definition of that kind. The type becomes the factory of the definition
// when it implements the kind's factory method, e.g. BuildSchema for
// schemas:
//
//	//openapi:schema name=User collections=*
//	type UserSchema struct{}
//
//	func (UserSchema) BuildSchema() (*oas.Schema, error) { ... }
//
// A directive with a positional argument is a usage that refers to a
// definition by name. Usages on a type apply to every method of the
// handler; usages on a method or function apply to that handler only:
//
//	//openapi:tag users
//	type Users struct{}
//
//	//openapi:route GET /users/{id}
//	//openapi:response UserFound
//	//openapi:operation id=showUser summary="Show a user"
//	func (Users) Show(w http.ResponseWriter, r *http.Request) { ... }
//
// The name and collections attributes map onto the declaration fields of
// the same name; all other attributes are kept as string attributes.
//
// Render writes a file with Declarations, Source, and Routes functions that
// plug the result into a discovery.Registry and a routes.Table.
package scan
