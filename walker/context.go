package walker

import "context"

// WalkContext describes the node being visited.
type WalkContext struct {
	// JSONPath is the full JSON path to the current node.
	// Example: "$.paths['/pets'].get.responses['200']"
	JSONPath string

	// PathTemplate is the path template when walking within $.paths.
	PathTemplate string

	// Method is the lowercase HTTP method when walking within an operation.
	Method string

	// Name is the component name when walking within $.components.
	Name string

	ctx context.Context
}

// Context returns the context set with WithUserContext, or
// context.Background().
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// InOperationScope reports whether the node lies within an operation.
func (wc *WalkContext) InOperationScope() bool {
	return wc.Method != ""
}

// IsComponent reports whether the node lies within $.components.
func (wc *WalkContext) IsComponent() bool {
	return wc.Name != ""
}

// state is the scope shared by the nodes below one point of the walk.
type state struct {
	pathTemplate string
	method       string
	name         string
}

func (w *Walker) context(jsonPath string, s state) *WalkContext {
	return &WalkContext{
		JSONPath:     jsonPath,
		PathTemplate: s.pathTemplate,
		Method:       s.method,
		Name:         s.name,
		ctx:          w.ctx,
	}
}
