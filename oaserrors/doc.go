// Package oaserrors provides structured error types for the oasgen library.
//
// Import path: github.com/erraggy/oasgen/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As].
// Generation is all-or-nothing: none of these errors is recovered locally, and each
// carries enough identity (declaring location, component name, path and method) for
// a human to locate and fix the offending declaration.
//
// # Error Types
//
//   - [DiscoveryError]: a configured scope is missing, unreadable, or malformed
//   - [DuplicateComponentError]: two declarations of the same kind derive the same name
//   - [ConflictingOperationError]: two handlers claim the same method and path template
//   - [UnresolvedReferenceError]: a reference names a component absent from its table
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrDiscovery]: Matches any [DiscoveryError]
//   - [ErrDuplicateComponent]: Matches any [DuplicateComponentError]
//   - [ErrConflictingOperation]: Matches any [ConflictingOperationError]
//   - [ErrUnresolvedReference]: Matches any [UnresolvedReferenceError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Example
//
//	doc, err := gen.Generate(ctx, "default")
//	if errors.Is(err, oaserrors.ErrUnresolvedReference) {
//	    var refErr *oaserrors.UnresolvedReferenceError
//	    errors.As(err, &refErr)
//	    fmt.Printf("fix %s: %s is missing\n", refErr.Location, refErr.Ref)
//	}
package oaserrors
