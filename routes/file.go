package routes

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaserrors"
)

// A route file declares routes and handler markers for tools that cannot
// run the application's own registration code, such as the oasgen CLI:
//
//	handlers:
//	  - type: example.com/app/handlers.Users
//	    markers:
//	      - {kind: tag, ref: users}
//	routes:
//	  - method: GET
//	    path: /users/{id}
//	    handler: {type: example.com/app/handlers.Users, method: Show}
//	    markers:
//	      - {kind: response, ref: UserFound}
//	      - {kind: operation, attrs: {id: showUser}}
//	  - group: /admin
//	    collections: [admin]
//	    routes:
//	      - method: DELETE
//	        path: /users/{id}
//	        handler: {type: example.com/app/handlers.Admin, method: Delete}
type routeFile struct {
	Handlers []fileHandler `yaml:"handlers"`
	Routes   []fileRoute   `yaml:"routes"`
}

type fileHandler struct {
	Type    string       `yaml:"type"`
	Method  string       `yaml:"method"`
	Markers []fileMarker `yaml:"markers"`
}

type fileRoute struct {
	Method      string       `yaml:"method"`
	Path        string       `yaml:"path"`
	Handler     fileHandler  `yaml:"handler"`
	Group       string       `yaml:"group"`
	Routes      []fileRoute  `yaml:"routes"`
	Collections []string     `yaml:"collections"`
	Markers     []fileMarker `yaml:"markers"`
}

type fileMarker struct {
	Kind        string         `yaml:"kind"`
	Ref         string         `yaml:"ref"`
	Name        string         `yaml:"name"`
	Attrs       map[string]any `yaml:"attrs"`
	Collections []string       `yaml:"collections"`
}

type registrar interface {
	Group(prefix string, markers ...marker.Declaration) *Group
	Handle(method, path string, handler marker.Identity, markers ...marker.Declaration) *Route
}

// LoadFile registers the handlers and routes of the YAML route file at path.
func (t *Table) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided configuration
	if err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	var rf routeFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("routes: %s: %w", path, &oaserrors.ConfigError{Option: "routes", Value: path, Message: "invalid route file", Cause: err})
	}
	l := fileLoader{path: path}
	for _, h := range rf.Handlers {
		if h.Type == "" {
			return l.fail("handler entry without a type")
		}
		markers, err := l.markers(h.Markers)
		if err != nil {
			return err
		}
		t.Attach(h.Type, h.Method, markers...)
	}
	return l.register(t, rf.Routes)
}

type fileLoader struct {
	path string
}

func (l fileLoader) fail(msg string) error {
	return fmt.Errorf("routes: %s: %w", l.path, &oaserrors.ConfigError{Option: "routes", Value: l.path, Message: msg})
}

func (l fileLoader) register(r registrar, entries []fileRoute) error {
	for _, e := range entries {
		markers, err := l.markers(e.Markers)
		if err != nil {
			return err
		}
		if e.Group != "" || len(e.Routes) > 0 {
			g := r.Group(e.Group, markers...)
			if len(e.Collections) > 0 {
				g.In(e.Collections...)
			}
			if err := l.register(g, e.Routes); err != nil {
				return err
			}
			continue
		}
		if e.Method == "" || e.Path == "" {
			return l.fail("route entry needs a method and a path")
		}
		if e.Handler.Type == "" {
			return l.fail(fmt.Sprintf("route %s %s has no handler type", e.Method, e.Path))
		}
		route := r.Handle(e.Method, e.Path, marker.Identity{Type: e.Handler.Type, Method: e.Handler.Method, Location: l.path}, markers...)
		if len(e.Collections) > 0 {
			route.In(e.Collections...)
		}
	}
	return nil
}

func (l fileLoader) markers(entries []fileMarker) ([]marker.Declaration, error) {
	out := make([]marker.Declaration, 0, len(entries))
	for _, m := range entries {
		kind, ok := marker.ParseKind(m.Kind)
		if !ok {
			return nil, l.fail(fmt.Sprintf("unknown marker kind %q", m.Kind))
		}
		out = append(out, marker.Declaration{
			ID:          marker.Identity{Location: l.path},
			Kind:        kind,
			Attrs:       m.Attrs,
			Name:        m.Name,
			Ref:         m.Ref,
			Collections: m.Collections,
		})
	}
	return out, nil
}
