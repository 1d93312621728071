package routes

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/erraggy/oasgen/marker"
)

// Table is a Source for routes registered in code. Routes may be nested
// in groups that share a path prefix, markers and collections; markers
// may also be attached to handler types and methods separately, which is
// how generated registration code associates directive markers.
//
// A Table is safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	root    *Group
	entries []*Route
	class   map[string][]marker.Declaration
	method  map[handlerKey][]marker.Declaration
}

type handlerKey struct {
	typ    string
	method string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	t := &Table{
		class:  make(map[string][]marker.Declaration),
		method: make(map[handlerKey][]marker.Declaration),
	}
	t.root = &Group{table: t}
	return t
}

// Group starts a top-level group. See Group.Group.
func (t *Table) Group(prefix string, markers ...marker.Declaration) *Group {
	return t.root.Group(prefix, markers...)
}

// Handle registers a route outside any group.
func (t *Table) Handle(method, path string, handler marker.Identity, markers ...marker.Declaration) *Route {
	return t.root.Handle(method, path, handler, markers...)
}

// Attach associates markers with a handler. An empty method attaches them
// to the handler type (class level); otherwise to that method.
func (t *Table) Attach(handlerType, method string, markers ...marker.Declaration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range markers {
		m = m.Clone()
		if method == "" {
			m.Level = marker.LevelClass
			t.class[handlerType] = append(t.class[handlerType], m)
		} else {
			m.Level = marker.LevelMethod
			k := handlerKey{typ: handlerType, method: method}
			t.method[k] = append(t.method[k], m)
		}
	}
}

// Routes implements Source. Each operation lists its markers from the
// most to the least specific attachment: route and method markers, class
// markers, then group markers from the innermost group outwards.
func (t *Table) Routes(_ context.Context) ([]Operation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ops := make([]Operation, 0, len(t.entries))
	for _, r := range t.entries {
		op := Operation{
			Method:      strings.ToUpper(r.method),
			Path:        NormalizePath(r.path),
			Handler:     r.handler,
			Collections: slices.Clone(r.collections),
		}
		for _, m := range r.markers {
			m = m.Clone()
			m.Level = marker.LevelMethod
			op.Markers = append(op.Markers, m)
		}
		if r.handler.Method != "" {
			for _, m := range t.method[handlerKey{typ: r.handler.Type, method: r.handler.Method}] {
				op.Markers = append(op.Markers, m.Clone())
			}
		}
		for _, m := range t.class[r.handler.Type] {
			op.Markers = append(op.Markers, m.Clone())
		}
		for g := r.group; g != nil && g != t.root; g = g.parent {
			for _, m := range g.markers {
				m = m.Clone()
				m.Level = marker.LevelGroup
				m.Depth = g.depth
				op.Markers = append(op.Markers, m)
			}
			if len(op.Collections) == 0 {
				op.Collections = slices.Clone(g.collections)
			}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Group is a set of routes sharing a path prefix, markers and collections.
// Groups nest; the depth of a top-level group is 1.
type Group struct {
	table       *Table
	parent      *Group
	prefix      string
	depth       int
	markers     []marker.Declaration
	collections []string
}

// Group starts a nested group whose prefix extends g's.
func (g *Group) Group(prefix string, markers ...marker.Declaration) *Group {
	return &Group{
		table:   g.table,
		parent:  g,
		prefix:  g.prefix + prefix,
		depth:   g.depth + 1,
		markers: cloneAll(markers),
	}
}

// In sets the collections of routes in g that do not name their own.
func (g *Group) In(collections ...string) *Group {
	g.table.mu.Lock()
	defer g.table.mu.Unlock()
	g.collections = slices.Clone(collections)
	return g
}

// Handle registers a route under g. Markers passed here apply to this
// route only, at method level.
func (g *Group) Handle(method, path string, handler marker.Identity, markers ...marker.Declaration) *Route {
	r := &Route{
		table:   g.table,
		group:   g,
		method:  method,
		path:    g.prefix + path,
		handler: handler,
		markers: cloneAll(markers),
	}
	g.table.mu.Lock()
	g.table.entries = append(g.table.entries, r)
	g.table.mu.Unlock()
	return r
}

// GET registers a GET route.
func (g *Group) GET(path string, handler marker.Identity, markers ...marker.Declaration) *Route {
	return g.Handle(http.MethodGet, path, handler, markers...)
}

// POST registers a POST route.
func (g *Group) POST(path string, handler marker.Identity, markers ...marker.Declaration) *Route {
	return g.Handle(http.MethodPost, path, handler, markers...)
}

// PUT registers a PUT route.
func (g *Group) PUT(path string, handler marker.Identity, markers ...marker.Declaration) *Route {
	return g.Handle(http.MethodPut, path, handler, markers...)
}

// PATCH registers a PATCH route.
func (g *Group) PATCH(path string, handler marker.Identity, markers ...marker.Declaration) *Route {
	return g.Handle(http.MethodPatch, path, handler, markers...)
}

// DELETE registers a DELETE route.
func (g *Group) DELETE(path string, handler marker.Identity, markers ...marker.Declaration) *Route {
	return g.Handle(http.MethodDelete, path, handler, markers...)
}

// Route is a registered route.
type Route struct {
	table       *Table
	group       *Group
	method      string
	path        string
	handler     marker.Identity
	markers     []marker.Declaration
	collections []string
}

// In sets the collections of the route, overriding its groups'.
func (r *Route) In(collections ...string) *Route {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()
	r.collections = slices.Clone(collections)
	return r
}

func cloneAll(decls []marker.Declaration) []marker.Declaration {
	out := make([]marker.Declaration, len(decls))
	for i, d := range decls {
		out[i] = d.Clone()
	}
	return out
}
