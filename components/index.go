package components

import (
	"maps"
	"slices"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaslog"
)

// Index maps names to the definitions of a kind that is not emitted under
// #/components/ (parameters and extensions). Usage markers reference
// these by name and the body is inlined where used.
type Index struct {
	kind  marker.Kind
	decls map[string]marker.Declaration
}

// NewIndex names decls with namer. Names must be unique within the kind.
func NewIndex(kind marker.Kind, decls []marker.Declaration, namer Namer) (*Index, error) {
	origins := make(map[string]marker.Identity)
	named, err := assignNames(kind, namer, decls, origins, oaslog.NopLogger{})
	if err != nil {
		return nil, err
	}
	idx := &Index{kind: kind, decls: make(map[string]marker.Declaration, len(named))}
	for _, nd := range named {
		idx.decls[nd.name] = nd.decl
	}
	return idx, nil
}

// Lookup returns a copy of the named declaration.
func (i *Index) Lookup(name string) (marker.Declaration, bool) {
	if i == nil {
		return marker.Declaration{}, false
	}
	d, ok := i.decls[name]
	if !ok {
		return marker.Declaration{}, false
	}
	return d.Clone(), true
}

// Names returns the indexed names in sorted order.
func (i *Index) Names() []string {
	if i == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(i.decls))
}

// Kind returns the kind of the indexed declarations.
func (i *Index) Kind() marker.Kind {
	if i == nil {
		return ""
	}
	return i.kind
}
