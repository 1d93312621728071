package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
)

const sampleConfig = `
openapi: 3.0.3
info:
  title: Petstore
  version: 2.1.0
  x-audience: public
servers:
  - url: https://api.example.com
tags:
  - name: pets
    description: Everything about pets
security:
  - bearer: []
scopes:
  schema:
    - app/*/schemas
fragments:
  - shared/common.yaml
naming: pascal
strip_kind_suffix: false
dedupe_schemas: true
collections:
  admin:
    info:
      title: Petstore Admin
    include_paths:
      - /admin/*
  partners:
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", cfg.OpenAPI)
	assert.Equal(t, "Petstore", cfg.Info.Title)
	assert.Equal(t, "2.1.0", cfg.Info.Version)
	assert.Equal(t, "public", cfg.Info.Extra["x-audience"])
	require.Len(t, cfg.Servers, 1)
	assert.Equal(t, "https://api.example.com", cfg.Servers[0].URL)
	require.Len(t, cfg.Security, 1)
	assert.Equal(t, []string{}, cfg.Security[0]["bearer"])
	assert.Equal(t, []string{"app/*/schemas"}, cfg.ScopesFor(marker.KindSchema))
	assert.Empty(t, cfg.ScopesFor(marker.KindResponse))
	assert.Equal(t, naming.Pascal, cfg.NamingStrategy())
	assert.False(t, cfg.StripSuffix())
	assert.True(t, cfg.DedupeSchemas)

	admin, ok := cfg.Collection("admin")
	require.True(t, ok)
	assert.Equal(t, "Petstore Admin", admin.Info.Title)
	assert.Equal(t, []string{"/admin/*"}, admin.IncludePaths)

	partners, ok := cfg.Collection("partners")
	require.True(t, ok, "empty collection entry is kept")
	assert.NotNil(t, partners)

	assert.Equal(t, []string{"admin", "default", "partners"}, cfg.CollectionNames())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "3.1.0", cfg.OpenAPI)
	assert.True(t, cfg.StripSuffix())
	assert.Equal(t, naming.AsIs, cfg.NamingStrategy())
	assert.Equal(t, []string{DefaultCollection}, cfg.CollectionNames())

	coll, ok := cfg.Collection(DefaultCollection)
	require.True(t, ok)
	assert.NotNil(t, coll)

	_, ok = cfg.Collection("missing")
	assert.False(t, ok)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantOption string
	}{
		{"swagger version", "openapi: '2.0'", "openapi"},
		{"missing title", "info: {title: '', version: '1'}", "info"},
		{"unknown naming", "naming: shouting", "naming"},
		{"unknown scope kind", "scopes: {definition: [x]}", "scopes"},
		{"operation has no scope", "scopes: {operation: [x]}", "scopes"},
		{"wildcard collection", "collections: {'*': {}}", "collections"},
		{"empty default collection", "default_collection: ''", "default_collection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))

			var cfgErr *oaserrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantOption, cfgErr.Option)
		})
	}

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("info: [unterminated"))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("OASGEN_OPENAPI_VERSION", "3.2.0")
	t.Setenv("OASGEN_ROOT", "/srv/app")
	t.Setenv("OASGEN_DEFAULT_COLLECTION", "public")
	t.Setenv("OASGEN_NAMING", "snake")
	t.Setenv("OASGEN_DEDUPE_SCHEMAS", "true")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "3.2.0", cfg.OpenAPI)
	assert.Equal(t, "/srv/app", cfg.Root)
	assert.Equal(t, "public", cfg.DefaultCollection)
	assert.Equal(t, naming.Snake, cfg.NamingStrategy())
	assert.True(t, cfg.DedupeSchemas)
}

func TestApplyEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("OASGEN_OPENAPI_VERSION", "2.0")
	t.Setenv("OASGEN_NAMING", "weird")
	t.Setenv("OASGEN_DEDUPE_SCHEMAS", "maybe")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "3.1.0", cfg.OpenAPI)
	assert.Equal(t, "as-is", cfg.Naming)
	assert.False(t, cfg.DedupeSchemas)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("root: project\ninfo: {title: T, version: '1'}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "project"), cfg.Root)
	assert.Equal(t, filepath.Join(dir, "project", "openapi"), cfg.Resolve("openapi"))
	assert.Equal(t, "/abs", cfg.Resolve("/abs/"))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMergeInfo(t *testing.T) {
	base := &oas.Info{Title: "API", Version: "1.0.0", Description: "base", Extra: map[string]any{"x-a": 1}}
	override := &oas.Info{Title: "Admin API", Extra: map[string]any{"x-b": 2}}

	got := MergeInfo(base, override)
	assert.Equal(t, "Admin API", got.Title)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, "base", got.Description)
	assert.Equal(t, map[string]any{"x-a": 1, "x-b": 2}, got.Extra)
	assert.Equal(t, map[string]any{"x-a": 1}, base.Extra, "base is not modified")

	assert.Equal(t, "API", MergeInfo(base, nil).Title)
	assert.Equal(t, "Admin API", MergeInfo(nil, override).Title)
}

func TestMergeExtensions(t *testing.T) {
	assert.Nil(t, MergeExtensions(nil, nil))
	assert.Equal(t,
		map[string]any{"x-a": 1, "x-b": 3},
		MergeExtensions(map[string]any{"x-a": 1, "x-b": 2}, map[string]any{"x-b": 3}),
	)
}
