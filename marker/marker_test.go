package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/oas"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name      string
		id        Identity
		wantStr   string
		wantShort string
	}{
		{
			name:      "qualified type with location",
			id:        Identity{Type: "example.com/app/models.UserSchema", Location: "models/user.go:12"},
			wantStr:   "example.com/app/models.UserSchema (models/user.go:12)",
			wantShort: "UserSchema",
		},
		{
			name:      "method",
			id:        Identity{Type: "handlers.Users", Method: "Show"},
			wantStr:   "handlers.Users.Show",
			wantShort: "Users",
		},
		{
			name:      "backslash namespace",
			id:        Identity{Type: `App\Schemas\Address`},
			wantStr:   `App\Schemas\Address`,
			wantShort: "Address",
		},
		{
			name:      "bare name",
			id:        Identity{Type: "Pet"},
			wantStr:   "Pet",
			wantShort: "Pet",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStr, tt.id.String())
			assert.Equal(t, tt.wantShort, tt.id.ShortName())
		})
	}
}

func TestKind(t *testing.T) {
	k, ok := ParseKind("request_body")
	require.True(t, ok)
	assert.Equal(t, KindRequestBody, k)
	assert.True(t, k.IsComponent())
	assert.Equal(t, "requestBodies", k.Section())
	assert.Equal(t, "request_bodies", k.ScopeDir())
	assert.Equal(t, "RequestBody", k.Suffix())
	assert.Equal(t, "#/components/requestBodies/CreateUser", k.Ref("CreateUser"))

	_, ok = ParseKind("definition")
	assert.False(t, ok)

	assert.False(t, KindParameters.IsComponent())
	assert.Empty(t, KindTag.Ref("x"))
	assert.Empty(t, KindOperation.ScopeDir())
	assert.NotContains(t, DiscoverableKinds, KindOperation)
	assert.Len(t, ComponentKinds, 5)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "group", LevelGroup.String())
	assert.Equal(t, "class", LevelClass.String())
	assert.Equal(t, "method", LevelMethod.String())
	assert.Equal(t, "Level(7)", Level(7).String())
	assert.Greater(t, LevelMethod, LevelClass)
	assert.Greater(t, LevelClass, LevelGroup)
}

func TestDeclarationAttrs(t *testing.T) {
	d := Declaration{
		Attrs: map[string]any{
			"status":     404,
			"summary":    "Show a user",
			"deprecated": "yes",
			"tags":       "users, admin",
			"scopes":     []any{"read", "write"},
			"security":   "",
		},
	}

	assert.Equal(t, "404", d.Attr("status"))
	assert.Equal(t, "Show a user", d.Attr("summary"))
	assert.Empty(t, d.Attr("missing"))
	assert.True(t, d.Flag("deprecated"))
	assert.False(t, d.Flag("summary"))

	tags, ok := d.List("tags")
	require.True(t, ok)
	assert.Equal(t, []string{"users", "admin"}, tags)

	scopes, ok := d.List("scopes")
	require.True(t, ok)
	assert.Equal(t, []string{"read", "write"}, scopes)

	sec, ok := d.List("security")
	require.True(t, ok, "explicitly empty attribute is present")
	assert.Empty(t, sec)

	_, ok = d.List("missing")
	assert.False(t, ok)
	assert.True(t, d.Has("security"))
	assert.False(t, d.Has("missing"))
}

func TestDeclarationClone(t *testing.T) {
	d := Declaration{
		Attrs:       map[string]any{"status": "201"},
		Collections: []string{"public"},
	}
	c := d.Clone()
	c.Attrs["status"] = "500"
	c.Collections[0] = "internal"

	assert.Equal(t, "201", d.Attr("status"))
	assert.Equal(t, []string{"public"}, d.Collections)
	assert.False(t, d.IsUsage())
	assert.True(t, Declaration{Ref: "UserFound"}.IsUsage())
}

func TestInCollection(t *testing.T) {
	tests := []struct {
		name        string
		memberships []string
		collection  string
		want        bool
	}{
		{"no membership in default", nil, "default", true},
		{"no membership elsewhere", nil, "public", false},
		{"listed", []string{"public", "admin"}, "admin", true},
		{"not listed", []string{"public"}, "default", false},
		{"wildcard", []string{"*"}, "anything", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Declaration{Collections: tt.memberships}.InCollection(tt.collection, "default"))
		})
	}
}

func TestFuncAdapters(t *testing.T) {
	var sf SchemaFactory = SchemaFunc(func() (*oas.Schema, error) {
		return &oas.Schema{Type: "string"}, nil
	})
	s, err := sf.BuildSchema()
	require.NoError(t, err)
	assert.Equal(t, "string", s.Type)

	var ef ExtensionFactory = ExtensionFunc(func() (string, any, error) {
		return "rate-limit", 100, nil
	})
	key, val, err := ef.BuildExtension()
	require.NoError(t, err)
	assert.Equal(t, "rate-limit", key)
	assert.Equal(t, 100, val)

	var pf ParametersFactory = ParametersFunc(func() ([]*oas.Parameter, error) {
		return []*oas.Parameter{{Name: "page", In: oas.ParamInQuery}}, nil
	})
	params, err := pf.BuildParameters()
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "page", params[0].Name)
}

func TestDeclarationExtension(t *testing.T) {
	key, val, err := Declaration{Name: "x-rate", Attrs: map[string]any{"value": 10}}.Extension()
	require.NoError(t, err)
	assert.Equal(t, "x-rate", key)
	assert.Equal(t, 10, val)

	key, _, err = Declaration{Name: "ignored", Attrs: map[string]any{"key": "x-audience"}}.Extension()
	require.NoError(t, err)
	assert.Equal(t, "x-audience", key)

	key, val, err = Declaration{Factory: ExtensionFunc(func() (string, any, error) {
		return "x-logo", map[string]any{"url": "logo.png"}, nil
	})}.Extension()
	require.NoError(t, err)
	assert.Equal(t, "x-logo", key)
	assert.Equal(t, map[string]any{"url": "logo.png"}, val)

	_, _, err = Declaration{Factory: TagFunc(func() (*oas.Tag, error) { return nil, nil })}.Extension()
	assert.ErrorContains(t, err, "marker.ExtensionFactory")
}
