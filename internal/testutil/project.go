package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ProjectFiles is a file-based users API: configuration, marker files
// for the default scopes, and a route file. Keys are slash-separated
// paths relative to the project root.
var ProjectFiles = map[string]string{
	"oasgen.yaml": `info:
  title: Users API
  version: 1.0.0
routes: [routes.yaml]
collections:
  admin:
    info: {title: Users Admin API}
    include_paths: ["/admin/*"]
`,
	"openapi/schemas/user.yaml": `type: models.UserSchema
collections: ["*"]
body:
  type: object
  properties:
    id: {type: string}
`,
	"openapi/responses/user_found.yaml": `type: responses.UserFoundResponse
collections: ["*"]
body:
  description: User found
  content:
    application/json:
      schema: {$ref: "#/components/schemas/User"}
`,
	"routes.yaml": `routes:
  - method: GET
    path: /users/{id}
    handler: {type: handlers.Users, method: Show}
    markers:
      - {kind: response, ref: UserFound}
      - {kind: operation, attrs: {id: showUser}}
  - group: /admin
    collections: [admin]
    routes:
      - method: GET
        path: /users/{id}
        handler: {type: handlers.Admin, method: Show}
        markers:
          - {kind: response, ref: UserFound}
`,
}

// WriteProject writes ProjectFiles into a temporary directory and returns
// the path of its oasgen.yaml.
func WriteProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range ProjectFiles {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write project file: %v", err)
		}
	}
	return filepath.Join(root, "oasgen.yaml")
}
