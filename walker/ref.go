package walker

// RefNodeType names the kind of object that holds a $ref.
type RefNodeType string

const (
	RefNodeSchema         RefNodeType = "schema"
	RefNodeParameter      RefNodeType = "parameter"
	RefNodeResponse       RefNodeType = "response"
	RefNodeRequestBody    RefNodeType = "requestBody"
	RefNodeHeader         RefNodeType = "header"
	RefNodeCallback       RefNodeType = "callback"
	RefNodeExample        RefNodeType = "example"
	RefNodeLink           RefNodeType = "link"
	RefNodePathItem       RefNodeType = "pathItem"
	RefNodeSecurityScheme RefNodeType = "securityScheme"
)

// RefInfo describes a $ref encountered during traversal.
type RefInfo struct {
	// Ref is the $ref value, e.g. "#/components/schemas/User".
	Ref string

	// SourcePath is the JSON path of the node holding the ref.
	SourcePath string

	// NodeType is the kind of node holding the ref.
	NodeType RefNodeType
}

func (w *Walker) handleRef(ref, jsonPath string, nodeType RefNodeType, s state) {
	if w.onRef == nil || ref == "" || w.stopped {
		return
	}
	info := &RefInfo{Ref: ref, SourcePath: jsonPath, NodeType: nodeType}
	if w.onRef(w.context(jsonPath, s), info) == Stop {
		w.stopped = true
	}
}
