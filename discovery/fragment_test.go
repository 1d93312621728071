package discovery

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaserrors"
)

const petFragment = `
openapi: 3.0.3
info:
  title: Pets fragment
  version: "1"
paths: {}
tags:
  - name: pets
    description: Pet operations
x-logo:
  url: https://example.com/logo.png
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
    Error:
      type: object
  parameters:
    Limit:
      name: limit
      in: query
      schema:
        type: integer
  securitySchemes:
    bearer:
      type: http
      scheme: bearer
`

func TestFragmentSource(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "fragments", "pets.yaml")
	writeFile(t, path, petFragment)

	cfg := testConfig(root)
	cfg.Fragments = []string{"fragments/pets.yaml"}
	reg := NewRegistry(cfg, WithoutDefaultScopes())
	ctx := context.Background()

	scopes, err := reg.Scopes(marker.KindSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{FragmentScopePrefix + path}, scopes)

	schemas, err := reg.Discover(ctx, marker.KindSchema)
	require.NoError(t, err)
	require.Len(t, schemas, 2)
	assert.Equal(t, "Error", schemas[0].Name)
	assert.Equal(t, "Pet", schemas[1].Name)
	assert.Equal(t, path+"#/components/schemas/Pet", schemas[1].ID.Location)

	pet, err := schemas[1].Factory.(marker.SchemaFactory).BuildSchema()
	require.NoError(t, err)
	require.Contains(t, pet.Properties, "name")

	params, err := reg.Discover(ctx, marker.KindParameters)
	require.NoError(t, err)
	require.Len(t, params, 1)
	list, err := params[0].Factory.(marker.ParametersFactory).BuildParameters()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "limit", list[0].Name)

	schemes, err := reg.Discover(ctx, marker.KindSecurityScheme)
	require.NoError(t, err)
	require.Len(t, schemes, 1)
	scheme, err := schemes[0].Factory.(marker.SecuritySchemeFactory).BuildSecurityScheme()
	require.NoError(t, err)
	assert.Equal(t, "bearer", scheme.Scheme)

	tags, err := reg.Discover(ctx, marker.KindTag)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	tag, err := tags[0].Factory.(marker.TagFactory).BuildTag()
	require.NoError(t, err)
	assert.Equal(t, "pets", tag.Name)
	assert.Equal(t, "Pet operations", tag.Description)

	exts, err := reg.Discover(ctx, marker.KindExtension)
	require.NoError(t, err)
	require.Len(t, exts, 1)
	key, value, err := exts[0].Factory.(marker.ExtensionFactory).BuildExtension()
	require.NoError(t, err)
	assert.Equal(t, "x-logo", key)
	assert.Equal(t, marker.TargetDocument, exts[0].Attr(marker.AttrTarget))
	assert.Equal(t, map[string]any{"url": "https://example.com/logo.png"}, value)

	responses, err := reg.Discover(ctx, marker.KindResponse)
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestFragmentSourceMissingFile(t *testing.T) {
	src := NewFragmentSource(filepath.Join(t.TempDir(), "missing.yaml"))
	scope := src.Scopes(marker.KindSchema)[0]
	assert.True(t, src.Handles(scope))

	_, err := src.Discover(context.Background(), scope, marker.KindSchema)
	assert.ErrorIs(t, err, oaserrors.ErrDiscovery)
}
