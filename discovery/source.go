package discovery

import (
	"context"

	"github.com/erraggy/oasgen/marker"
)

// Source finds marker declarations inside a scope.
//
// Sources are pure: Discover must return the same declarations for the
// same scope and kind, and must not retain or mutate returned values.
type Source interface {
	// Handles reports whether the source can scan scope.
	Handles(scope string) bool
	// Discover returns the declarations of kind found in scope, in a
	// stable order.
	Discover(ctx context.Context, scope string, kind marker.Kind) ([]marker.Declaration, error)
}

// ScopeProvider is implemented by sources that contribute scopes of their
// own, in addition to the filesystem scopes the Registry resolves. The
// static and fragment sources use it.
type ScopeProvider interface {
	Scopes(kind marker.Kind) []string
}
