package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/routes"
)

func TestMatchAny(t *testing.T) {
	tests := []struct {
		pattern  string
		template string
		want     bool
	}{
		{"/admin/*", "/admin", true},
		{"/admin/*", "/admin/users/{id}", true},
		{"/admin/*", "/administrators", false},
		{"admin/*", "/admin/users", true},
		{"/*", "/anything/at/all", true},
		{"/users/*/orders", "/users/{id}/orders", true},
		{"/users/*/orders", "/users/{id}/orders/{order}", false},
		{"/users", "/users", true},
		{"/users", "/users/{id}", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, matchAny([]string{tt.pattern}, tt.template))
		})
	}
}

func TestSelectorRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.Collections = map[string]*config.Collection{
		"billing": {IncludeTags: []string{"billing"}, ExcludePaths: []string{"/invoices/drafts"}},
	}
	sel, err := NewSelector(cfg, "billing")
	require.NoError(t, err)

	tagged := func(path string, markers ...marker.Declaration) routes.Operation {
		return routes.Operation{Method: "GET", Path: path, Collections: []string{"*"}, Markers: markers}
	}
	ops := []routes.Operation{
		tagged("/invoices", marker.Declaration{Kind: marker.KindTag, Ref: "billing"}),
		tagged("/invoices/drafts", marker.Declaration{Kind: marker.KindTag, Ref: "billing"}),
		tagged("/payments", marker.Declaration{Kind: marker.KindOperation, Attrs: map[string]any{"tags": []any{"billing"}}}),
		tagged("/users", marker.Declaration{Kind: marker.KindTag, Ref: "users"}),
		{Method: "GET", Path: "/refunds", Markers: []marker.Declaration{{Kind: marker.KindTag, Ref: "billing"}}},
		tagged("/credits",
			marker.Declaration{Kind: marker.KindTag, Ref: "billing"},
			marker.Declaration{Kind: marker.KindResponse, Ref: "Legacy", Collections: []string{"default"}},
			marker.Declaration{Kind: marker.KindResponse, Ref: "Credit"},
		),
	}

	kept := sel.Routes(ops)
	var paths []string
	for _, op := range kept {
		paths = append(paths, op.Path)
	}
	assert.Equal(t, []string{"/invoices", "/payments", "/credits"}, paths)

	credits := kept[2]
	require.Len(t, credits.Markers, 2, "markers of other collections are dropped")
	assert.Equal(t, "Credit", credits.Markers[1].Ref)
	assert.Len(t, ops[5].Markers, 3, "input is not modified")
}

func TestSelectorDeclarations(t *testing.T) {
	sel, err := NewSelector(config.Default(), "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCollection, sel.Collection)

	all := map[marker.Kind][]marker.Declaration{
		marker.KindSchema: {
			{ID: marker.Identity{Type: "A"}},
			{ID: marker.Identity{Type: "B"}, Collections: []string{"admin"}},
			{ID: marker.Identity{Type: "C"}, Collections: []string{"*"}},
		},
	}
	got := sel.Declarations(all)
	require.Len(t, got[marker.KindSchema], 2)
	assert.Equal(t, "A", got[marker.KindSchema][0].ID.Type)
	assert.Equal(t, "C", got[marker.KindSchema][1].ID.Type)
}

func TestRouteTags(t *testing.T) {
	op := routes.Operation{Markers: []marker.Declaration{
		{Kind: marker.KindOperation, Attrs: map[string]any{"tags": "a,b"}},
		{Kind: marker.KindTag, Name: "c"},
		{Kind: marker.KindTag, Attrs: map[string]any{"name": "a"}},
		{Kind: marker.KindResponse, Ref: "x"},
	}}
	assert.Equal(t, []string{"a", "b", "c"}, RouteTags(op))
}
