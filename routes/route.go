package routes

import (
	"context"
	"slices"
	"strings"

	"github.com/erraggy/oasgen/marker"
)

// Operation is one registered route: a method and path template handled
// by a code element, together with the markers that apply to it.
type Operation struct {
	// Method is the upper-case HTTP method.
	Method string
	// Path is the normalized path template ("/users/{id}").
	Path string
	// Handler identifies the code element serving the route.
	Handler marker.Identity
	// Markers are the attached declarations. Level and Depth record where
	// each was attached; among equals, earlier entries take precedence.
	Markers []marker.Declaration
	// Collections lists the collections the route belongs to.
	// Empty means the default collection; "*" means every collection.
	Collections []string
}

// Key returns "METHOD path".
func (o Operation) Key() string {
	return o.Method + " " + o.Path
}

// Clone returns a copy of o that shares no slices or maps with it.
func (o Operation) Clone() Operation {
	markers := make([]marker.Declaration, len(o.Markers))
	for i, m := range o.Markers {
		markers[i] = m.Clone()
	}
	o.Markers = markers
	o.Collections = slices.Clone(o.Collections)
	return o
}

// InCollection reports whether o belongs to the named collection.
func (o Operation) InCollection(name, defaultName string) bool {
	return marker.InCollection(o.Collections, name, defaultName)
}

// Source lists the routes of an application with their markers already
// associated.
type Source interface {
	Routes(ctx context.Context) ([]Operation, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Operation, error)

// Routes implements Source.
func (f SourceFunc) Routes(ctx context.Context) ([]Operation, error) {
	return f(ctx)
}

// NormalizePath converts a router path into an OpenAPI path template.
// Router parameters ":id" and "{id:[0-9]+}" become "{id}", and catch-all
// segments "*rest" become "{rest}" ("*" alone becomes "{wildcard}").
// The result starts with '/' and has no empty or trailing segments.
func NormalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	out := parts[:0]
	for _, part := range parts {
		switch {
		case part == "":
			continue
		case part[0] == ':':
			part = "{" + part[1:] + "}"
		case part[0] == '*':
			name := part[1:]
			if name == "" {
				name = "wildcard"
			}
			part = "{" + name + "}"
		case len(part) > 1 && part[0] == '{' && part[len(part)-1] == '}':
			if i := strings.IndexByte(part, ':'); i > 0 {
				part = part[:i] + "}"
			}
		}
		out = append(out, part)
	}
	return "/" + strings.Join(out, "/")
}

// Placeholders returns the parameter names of a normalized template in
// order of appearance.
func Placeholders(template string) []string {
	var names []string
	for rest := template; ; {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return names
		}
		if name := rest[start+1 : start+end]; name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
		rest = rest[start+end+1:]
	}
}
