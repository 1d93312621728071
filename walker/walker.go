package walker

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/oasgen/oas"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// RefHandler is called for each $ref encountered during traversal.
type RefHandler func(wc *WalkContext, ref *RefInfo) Action

// SchemaHandler is called for each schema, including nested schemas.
type SchemaHandler func(wc *WalkContext, schema *oas.Schema) Action

// OperationHandler is called for each operation.
type OperationHandler func(wc *WalkContext, op *oas.Operation) Action

// SecurityHandler is called for each security requirement, at the root
// and on operations.
type SecurityHandler func(wc *WalkContext, req oas.SecurityRequirement) Action

// Option configures a walk.
type Option func(*Walker)

// WithRefHandler sets a handler called when a $ref is encountered.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) {
		w.onRef = fn
	}
}

// WithSchemaHandler sets a handler called for every schema.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) {
		w.onSchema = fn
	}
}

// WithOperationHandler sets a handler called for every operation.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) {
		w.onOperation = fn
	}
}

// WithSecurityHandler sets a handler called for every security requirement.
func WithSecurityHandler(fn SecurityHandler) Option {
	return func(w *Walker) {
		w.onSecurity = fn
	}
}

// WithMaxSchemaDepth sets the maximum schema recursion depth.
// If depth is not positive, the default (100) is kept.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context handlers see through wc.Context().
// The walk stops with the context's error once it is done.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.ctx = ctx
	}
}

// Walker holds the handlers and state of one traversal.
type Walker struct {
	onRef       RefHandler
	onSchema    SchemaHandler
	onOperation OperationHandler
	onSecurity  SecurityHandler

	maxDepth int
	ctx      context.Context

	visited map[*oas.Schema]bool
	stopped bool
}

const defaultMaxDepth = 100

// Walk traverses doc, calling the handlers set by opts.
func Walk(doc *oas.Document, opts ...Option) error {
	if doc == nil {
		return errors.New("walker: nil Document")
	}
	w := &Walker{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(w)
	}
	w.visited = make(map[*oas.Schema]bool)
	if err := w.walkDocument(doc); err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	return nil
}

// handleAction records Stop and reports whether children should be visited.
func (w *Walker) handleAction(a Action) bool {
	switch a {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
