package walker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/oas"
)

func testDocument() *oas.Document {
	pet := &oas.Schema{
		Type: "object",
		Properties: map[string]*oas.Schema{
			"owner": {Ref: "#/components/schemas/User"},
			"tags":  {Type: "array", Items: &oas.Schema{Ref: "#/components/schemas/Tag"}},
		},
	}
	return &oas.Document{
		OpenAPI:  "3.0.3",
		Info:     &oas.Info{Title: "Test", Version: "1.0.0"},
		Security: []oas.SecurityRequirement{{"bearer": {}}},
		Paths: oas.Paths{
			"/pets/{id}": {
				Get: &oas.Operation{
					Parameters: []*oas.Parameter{{Ref: "#/components/parameters/Id"}},
					Responses: &oas.Responses{
						Default: &oas.Response{Ref: "#/components/responses/Error"},
						Codes: map[string]*oas.Response{
							"200": {Description: "ok", Content: map[string]*oas.MediaType{
								"application/json": {Schema: &oas.Schema{Ref: "#/components/schemas/Pet"}},
							}},
						},
					},
					Callbacks: map[string]*oas.Callback{"onPaid": {Ref: "#/components/callbacks/OnPaid"}},
					Security:  []oas.SecurityRequirement{{"oauth": {"read"}}},
				},
				Post: &oas.Operation{
					RequestBody: &oas.RequestBody{Ref: "#/components/requestBodies/NewPet"},
					Responses:   &oas.Responses{Default: &oas.Response{Description: "Default response"}},
				},
			},
		},
		Components: &oas.Components{
			Schemas: map[string]*oas.Schema{"Pet": pet},
		},
	}
}

func TestWalkRefs(t *testing.T) {
	var refs []RefInfo
	err := Walk(testDocument(), WithRefHandler(func(_ *WalkContext, ref *RefInfo) Action {
		refs = append(refs, *ref)
		return Continue
	}))
	require.NoError(t, err)

	assert.Equal(t, []RefInfo{
		{Ref: "#/components/parameters/Id", SourcePath: "$.paths['/pets/{id}'].get.parameters[0]", NodeType: RefNodeParameter},
		{Ref: "#/components/responses/Error", SourcePath: "$.paths['/pets/{id}'].get.responses['default']", NodeType: RefNodeResponse},
		{Ref: "#/components/schemas/Pet", SourcePath: "$.paths['/pets/{id}'].get.responses['200'].content['application/json'].schema", NodeType: RefNodeSchema},
		{Ref: "#/components/callbacks/OnPaid", SourcePath: "$.paths['/pets/{id}'].get.callbacks['onPaid']", NodeType: RefNodeCallback},
		{Ref: "#/components/requestBodies/NewPet", SourcePath: "$.paths['/pets/{id}'].post.requestBody", NodeType: RefNodeRequestBody},
		{Ref: "#/components/schemas/User", SourcePath: "$.components.schemas['Pet'].properties['owner']", NodeType: RefNodeSchema},
		{Ref: "#/components/schemas/Tag", SourcePath: "$.components.schemas['Pet'].properties['tags'].items", NodeType: RefNodeSchema},
	}, refs)
}

func TestWalkContextScope(t *testing.T) {
	var ops []string
	var components []string
	err := Walk(testDocument(),
		WithOperationHandler(func(wc *WalkContext, _ *oas.Operation) Action {
			assert.True(t, wc.InOperationScope())
			ops = append(ops, wc.Method+" "+wc.PathTemplate)
			return Continue
		}),
		WithSchemaHandler(func(wc *WalkContext, _ *oas.Schema) Action {
			if wc.IsComponent() {
				components = append(components, wc.Name)
			}
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"get /pets/{id}", "post /pets/{id}"}, ops)
	assert.Equal(t, []string{"Pet", "Pet", "Pet", "Pet"}, components, "nested schemas keep the component name")
}

func TestWalkSecurity(t *testing.T) {
	var paths []string
	err := Walk(testDocument(), WithSecurityHandler(func(wc *WalkContext, req oas.SecurityRequirement) Action {
		paths = append(paths, wc.JSONPath)
		return Continue
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"$.security[0]", "$.paths['/pets/{id}'].get.security[0]"}, paths)
}

func TestWalkStop(t *testing.T) {
	count := 0
	err := Walk(testDocument(), WithRefHandler(func(*WalkContext, *RefInfo) Action {
		count++
		return Stop
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWalkSkipChildren(t *testing.T) {
	var refs []string
	err := Walk(testDocument(),
		WithOperationHandler(func(*WalkContext, *oas.Operation) Action { return SkipChildren }),
		WithRefHandler(func(_ *WalkContext, ref *RefInfo) Action {
			refs = append(refs, ref.Ref)
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"#/components/schemas/User", "#/components/schemas/Tag"}, refs)
}

func TestWalkRewritesSchemaRefs(t *testing.T) {
	doc := testDocument()
	err := Walk(doc, WithSchemaHandler(func(_ *WalkContext, s *oas.Schema) Action {
		if s.Ref == "#/components/schemas/Tag" {
			s.Ref = "#/components/schemas/Label"
		}
		return Continue
	}))
	require.NoError(t, err)
	assert.Equal(t, "#/components/schemas/Label", doc.Components.Schemas["Pet"].Properties["tags"].Items.Ref)
}

func TestWalkCycle(t *testing.T) {
	node := &oas.Schema{Type: "object"}
	node.Properties = map[string]*oas.Schema{"next": node}
	doc := &oas.Document{Components: &oas.Components{Schemas: map[string]*oas.Schema{"Node": node}}}

	visits := 0
	err := Walk(doc, WithSchemaHandler(func(*WalkContext, *oas.Schema) Action {
		visits++
		return Continue
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, visits)
}

func TestWalkErrors(t *testing.T) {
	assert.Error(t, Walk(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Walk(testDocument(), WithUserContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Continue", Continue.String())
	assert.Equal(t, "SkipChildren", SkipChildren.String())
	assert.Equal(t, "Stop", Stop.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}
