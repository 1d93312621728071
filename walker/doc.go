// Package walker traverses generated OpenAPI 3.x documents.
//
// A walk visits the root security requirements, every path item and
// operation in sorted path order, and then the components, calling the
// registered handlers with the JSON path of each node. It is used to
// check that every $ref in a generated document resolves and to rewrite
// references after schema deduplication.
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # References
//
// [WithRefHandler] receives every non-empty $ref with the JSON path of the
// node holding it. Schemas that carry a $ref are still passed to the
// schema handler, which may rewrite schema.Ref in place.
//
//	var refs []string
//	err := walker.Walk(doc,
//	    walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
//	        refs = append(refs, ref.Ref)
//	        return walker.Continue
//	    }),
//	)
//
// Security requirements name schemes instead of referencing them, so they
// are reported separately through [WithSecurityHandler].
package walker
