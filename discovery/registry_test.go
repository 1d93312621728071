package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Root = root
	return cfg
}

// countingSource serves fixed declarations under its own scope and counts scans.
type countingSource struct {
	decls []marker.Declaration
	scans atomic.Int32
}

func (c *countingSource) Scopes(marker.Kind) []string { return []string{"count:"} }
func (c *countingSource) Handles(scope string) bool   { return scope == "count:" }
func (c *countingSource) Discover(_ context.Context, _ string, kind marker.Kind) ([]marker.Declaration, error) {
	c.scans.Add(1)
	var out []marker.Declaration
	for _, d := range c.decls {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out, nil
}

func TestRegistryDefaultScope(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "openapi", "schemas", "user.yaml"), `
type: models.UserSchema
body:
  type: object
  properties:
    id: {type: string}
`)

	reg := NewRegistry(testConfig(root))
	decls, err := reg.Discover(context.Background(), marker.KindSchema)
	require.NoError(t, err)
	require.Len(t, decls, 1)

	d := decls[0]
	assert.Equal(t, marker.KindSchema, d.Kind)
	assert.Equal(t, "models.UserSchema", d.ID.Type)
	assert.Contains(t, d.ID.Location, "user.yaml:2")

	factory, ok := d.Factory.(marker.SchemaFactory)
	require.True(t, ok)
	s, err := factory.BuildSchema()
	require.NoError(t, err)
	assert.Equal(t, "object", s.Type)
	assert.Contains(t, s.Properties, "id")

	again, err := factory.BuildSchema()
	require.NoError(t, err)
	assert.NotSame(t, s, again, "factories build fresh values")
}

func TestRegistryMissingDefaultScopeIsSkipped(t *testing.T) {
	reg := NewRegistry(testConfig(t.TempDir()))
	decls, err := reg.Discover(context.Background(), marker.KindResponse)
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestRegistryMissingConfiguredScopeFails(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Scopes = map[string][]string{"schema": {"app/schemas"}}

	_, err := NewRegistry(cfg).Discover(context.Background(), marker.KindSchema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDiscovery))

	var discErr *oaserrors.DiscoveryError
	require.ErrorAs(t, err, &discErr)
	assert.Equal(t, "scope does not exist", discErr.Message)
	assert.Equal(t, "schema", discErr.Kind)
}

func TestRegistryScopeOrderingAndDedup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "billing", "schemas", "invoice.yaml"), "type: billing.Invoice\nbody: {type: object}\n")
	writeFile(t, filepath.Join(root, "users", "schemas", "user.yaml"), "type: users.User\nbody: {type: object}\n")
	writeFile(t, filepath.Join(root, "openapi", "schemas", "error.yaml"), "type: shared.Error\nbody: {type: object}\n")

	cfg := testConfig(root)
	cfg.Scopes = map[string][]string{"schema": {
		"users/schemas",
		"*/schemas",        // matches billing, openapi, users
		"./users/schemas/", // duplicate after cleaning
	}}
	reg := NewRegistry(cfg)

	scopes, err := reg.Scopes(marker.KindSchema)
	require.NoError(t, err)
	require.Len(t, scopes, 3)
	assert.Equal(t, filepath.Join(root, "users", "schemas"), scopes[0])
	assert.Equal(t, filepath.Join(root, "billing", "schemas"), scopes[1])
	assert.Equal(t, filepath.Join(root, "openapi", "schemas"), scopes[2])

	decls, err := reg.Discover(context.Background(), marker.KindSchema)
	require.NoError(t, err)
	var types []string
	for _, d := range decls {
		types = append(types, d.ID.Type)
	}
	assert.Equal(t, []string{"users.User", "billing.Invoice", "shared.Error"}, types)
}

func TestRegistryGlobWithoutMatchesIsSkipped(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Scopes = map[string][]string{"tag": {"modules/*/tags"}}

	decls, err := NewRegistry(cfg).Discover(context.Background(), marker.KindTag)
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestRegistryCachesPerKind(t *testing.T) {
	src := &countingSource{decls: []marker.Declaration{
		{ID: marker.Identity{Type: "a.Pet"}, Kind: marker.KindSchema, Attrs: map[string]any{"k": "v"}},
		{ID: marker.Identity{Type: "a.Pet"}, Kind: marker.KindSchema},
		{ID: marker.Identity{Type: "a.Err"}, Kind: marker.KindResponse},
	}}
	reg := NewRegistry(testConfig(t.TempDir()), WithSource(src))
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decls, err := reg.Discover(ctx, marker.KindSchema)
			assert.NoError(t, err)
			assert.Len(t, decls, 1, "same identity is returned once")
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), src.scans.Load())

	decls, err := reg.Discover(ctx, marker.KindSchema)
	require.NoError(t, err)
	decls[0].Attrs["k"] = "mutated"

	fresh, err := reg.Discover(ctx, marker.KindSchema)
	require.NoError(t, err)
	assert.Equal(t, "v", fresh[0].Attr("k"), "callers receive copies")

	reg.Reset()
	_, err = reg.Discover(ctx, marker.KindSchema)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.scans.Load())
}

func TestRegistryRejectsOperationKind(t *testing.T) {
	_, err := NewRegistry(nil).Discover(context.Background(), marker.KindOperation)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestRegistryDiscoverAll(t *testing.T) {
	static := NewStaticSource(
		marker.Declaration{ID: marker.Identity{Type: "Pet"}, Kind: marker.KindSchema},
		marker.Declaration{ID: marker.Identity{Type: "pets"}, Kind: marker.KindTag},
	)
	all, err := NewRegistry(testConfig(t.TempDir()), WithSource(static), WithoutDefaultScopes()).DiscoverAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(marker.DiscoverableKinds))
	assert.Len(t, all[marker.KindSchema], 1)
	assert.Len(t, all[marker.KindTag], 1)
	assert.Empty(t, all[marker.KindResponse])
}

func TestFileSourceEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "openapi", "parameters", "paging.yaml"), `
- type: params.Paging
  collections: [public]
  body:
    - name: page
      in: query
      schema: {type: integer}
    - name: size
      in: query
- type: params.Trace
  body:
    name: X-Trace-Id
    in: header
`)
	writeFile(t, filepath.Join(root, "openapi", "callbacks", "hooks.yaml"), `
type: hooks.OnPaidCallback
body:
  "{$request.body#/callbackUrl}":
    post:
      responses:
        200:
          description: ok
`)
	writeFile(t, filepath.Join(root, "openapi", "extensions", "rate.yaml"), `
name: rate-limit
body: {limit: 100}
`)
	writeFile(t, filepath.Join(root, "openapi", "tags", "Pets.yaml"), "attrs: {description: Pets}\n")
	writeFile(t, filepath.Join(root, "openapi", "tags", "README.md"), "ignored")

	reg := NewRegistry(testConfig(root))
	ctx := context.Background()

	params, err := reg.Discover(ctx, marker.KindParameters)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, []string{"public"}, params[0].Collections)
	list, err := params[0].Factory.(marker.ParametersFactory).BuildParameters()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "page", list[0].Name)
	single, err := params[1].Factory.(marker.ParametersFactory).BuildParameters()
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, oas.ParamInHeader, single[0].In)

	callbacks, err := reg.Discover(ctx, marker.KindCallback)
	require.NoError(t, err)
	require.Len(t, callbacks, 1)
	cb, err := callbacks[0].Factory.(marker.CallbackFactory).BuildCallback()
	require.NoError(t, err)
	item := cb.Expressions["{$request.body#/callbackUrl}"]
	require.NotNil(t, item)
	assert.Equal(t, "ok", item.Post.Responses.Codes["200"].Description)

	exts, err := reg.Discover(ctx, marker.KindExtension)
	require.NoError(t, err)
	require.Len(t, exts, 1)
	key, val, err := exts[0].Factory.(marker.ExtensionFactory).BuildExtension()
	require.NoError(t, err)
	assert.Equal(t, "rate-limit", key)
	assert.Equal(t, map[string]any{"limit": float64(100)}, val)

	tags, err := reg.Discover(ctx, marker.KindTag)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Pets", tags[0].ID.Type)
	assert.Nil(t, tags[0].Factory)
	assert.Equal(t, "Pets", tags[0].Attr("description"))
}

func TestFileSourceInvalidFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "openapi", "schemas", "bad.yaml"), "just a string\n")

	_, err := NewRegistry(testConfig(root)).Discover(context.Background(), marker.KindSchema)
	require.Error(t, err)
	var discErr *oaserrors.DiscoveryError
	require.ErrorAs(t, err, &discErr)
	assert.Contains(t, discErr.Location, "bad.yaml")
	assert.Equal(t, "schema", discErr.Kind)
}

func TestStaticSource(t *testing.T) {
	s := NewStaticSource()
	assert.Nil(t, s.Scopes(marker.KindSchema))

	s.Register(marker.Declaration{ID: marker.Identity{Type: "Pet"}, Kind: marker.KindSchema, Collections: []string{"a"}})
	assert.Equal(t, []string{StaticScope}, s.Scopes(marker.KindSchema))
	assert.True(t, s.Handles(StaticScope))
	assert.False(t, s.Handles("/abs"))

	decls, err := s.Discover(context.Background(), StaticScope, marker.KindSchema)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	decls[0].Collections[0] = "b"

	again, _ := s.Discover(context.Background(), StaticScope, marker.KindSchema)
	assert.Equal(t, []string{"a"}, again[0].Collections)
}
