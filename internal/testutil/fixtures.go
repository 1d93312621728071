// Package testutil provides fixtures shared by the tests of several
// packages: a small users API described by declarations and routes.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/discovery"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/routes"
)

// UsersConfig returns the configuration of the users API: a default
// collection and an "admin" collection limited to /admin paths.
func UsersConfig() *config.Config {
	cfg := config.Default()
	cfg.Info = &oas.Info{Title: "Users API", Version: "1.0.0"}
	cfg.Servers = []*oas.Server{{URL: "https://api.example.com"}}
	cfg.Security = []oas.SecurityRequirement{{"bearer": {}}}
	cfg.Collections = map[string]*config.Collection{
		"admin": {
			Info:         &oas.Info{Title: "Users Admin API"},
			IncludePaths: []string{"/admin/*"},
		},
	}
	return cfg
}

// UsersDeclarations returns the declarations of the users API. NotFound
// and bearer belong to every collection; the rest to the default one.
func UsersDeclarations() []marker.Declaration {
	return []marker.Declaration{
		{
			ID:   marker.Identity{Type: "models.UserSchema", Location: "models/user.go:10"},
			Kind: marker.KindSchema,
			Factory: marker.SchemaFunc(func() (*oas.Schema, error) {
				return &oas.Schema{
					Type:     "object",
					Required: []string{"id", "name"},
					Properties: map[string]*oas.Schema{
						"id":      {Type: "string", Format: "uuid"},
						"name":    {Type: "string"},
						"address": {Ref: oas.SchemaRef("Address")},
					},
				}, nil
			}),
		},
		{
			ID:   marker.Identity{Type: "models.AddressSchema", Location: "models/address.go:8"},
			Kind: marker.KindSchema,
			Factory: marker.SchemaFunc(func() (*oas.Schema, error) {
				return &oas.Schema{Type: "object", Properties: map[string]*oas.Schema{"city": {Type: "string"}}}, nil
			}),
		},
		{
			ID:   marker.Identity{Type: "responses.UserFoundResponse"},
			Kind: marker.KindResponse,
			Factory: marker.ResponseFunc(func() (*oas.Response, error) {
				return &oas.Response{
					Description: "The user",
					Content: map[string]*oas.MediaType{
						"application/json": {Schema: &oas.Schema{Ref: oas.SchemaRef("User")}},
					},
				}, nil
			}),
		},
		{
			ID:          marker.Identity{Type: "responses.NotFoundResponse"},
			Kind:        marker.KindResponse,
			Attrs:       map[string]any{"status": "404"},
			Collections: []string{"*"},
			Factory: marker.ResponseFunc(func() (*oas.Response, error) {
				return &oas.Response{Description: "Not found"}, nil
			}),
		},
		{
			ID:   marker.Identity{Type: "bodies.NewUserRequestBody"},
			Kind: marker.KindRequestBody,
			Factory: marker.RequestBodyFunc(func() (*oas.RequestBody, error) {
				return &oas.RequestBody{
					Required: true,
					Content: map[string]*oas.MediaType{
						"application/json": {Schema: &oas.Schema{Ref: oas.SchemaRef("User")}},
					},
				}, nil
			}),
		},
		{
			ID:          marker.Identity{Type: "security.BearerSecurityScheme"},
			Kind:        marker.KindSecurityScheme,
			Name:        "bearer",
			Collections: []string{"*"},
			Factory: marker.SecuritySchemeFunc(func() (*oas.SecurityScheme, error) {
				return &oas.SecurityScheme{Type: "http", Scheme: "bearer", BearerFormat: "JWT"}, nil
			}),
		},
		{
			ID:   marker.Identity{Type: "params.PagingParameters"},
			Kind: marker.KindParameters,
			Factory: marker.ParametersFunc(func() ([]*oas.Parameter, error) {
				return []*oas.Parameter{
					{Name: "page", In: oas.ParamInQuery, Schema: &oas.Schema{Type: "integer"}},
					{Name: "size", In: oas.ParamInQuery, Schema: &oas.Schema{Type: "integer"}},
				}, nil
			}),
		},
		{
			ID:    marker.Identity{Type: "tags.UsersTag"},
			Kind:  marker.KindTag,
			Name:  "users",
			Attrs: map[string]any{"description": "User management"},
		},
	}
}

// UsersRegistry returns a registry that serves UsersDeclarations and
// scans no directories.
func UsersRegistry(cfg *config.Config) *discovery.Registry {
	return discovery.NewRegistry(cfg,
		discovery.WithSource(discovery.NewStaticSource(UsersDeclarations()...)),
		discovery.WithoutDefaultScopes(),
	)
}

// Use returns a usage marker referring to the named declaration.
func Use(kind marker.Kind, ref string, attrs map[string]any) marker.Declaration {
	return marker.Declaration{Kind: kind, Ref: ref, Attrs: attrs}
}

// Handler returns the identity of a handler method.
func Handler(typ, method string) marker.Identity {
	return marker.Identity{Type: typ, Method: method}
}

// UsersRoutes returns the routes of the users API:
//
//	GET    /users             list, paged
//	POST   /users             create
//	GET    /users/{id}        show
//	DELETE /admin/users/{id}  admin only
func UsersRoutes() *routes.Table {
	t := routes.NewTable()
	t.Attach("handlers.Users", "", Use(marker.KindTag, "users", nil))

	t.Handle("GET", "/users", Handler("handlers.Users", "Index"),
		Use(marker.KindOperation, "", map[string]any{"id": "listUsers", "summary": "List users"}),
		Use(marker.KindParameters, "Paging", nil),
	)
	t.Handle("POST", "/users", Handler("handlers.Users", "Store"),
		Use(marker.KindOperation, "", map[string]any{"id": "createUser"}),
		Use(marker.KindRequestBody, "NewUser", nil),
		Use(marker.KindResponse, "UserFound", map[string]any{"status": "201"}),
	)
	t.Handle("GET", "/users/:id", Handler("handlers.Users", "Show"),
		Use(marker.KindOperation, "", map[string]any{"id": "showUser"}),
		Use(marker.KindResponse, "UserFound", nil),
		Use(marker.KindResponse, "NotFound", nil),
	)

	admin := t.Group("/admin").In("admin")
	admin.DELETE("/users/{id}", Handler("handlers.AdminUsers", "Destroy"),
		Use(marker.KindOperation, "", map[string]any{"id": "deleteUser"}),
		Use(marker.KindResponse, "NotFound", nil),
	)
	return t
}

// WriteTempYAML marshals v to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, v any) string {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals v to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
