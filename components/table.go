package components

import (
	"maps"
	"slices"

	"github.com/erraggy/oasgen/marker"
)

// Table maps component names of one kind to their bodies and to the
// identities that declared them. A Table is read-only once built; a nil
// *Table behaves as an empty one.
type Table[T any] struct {
	kind    marker.Kind
	entries map[string]*T
	origins map[string]marker.Identity
}

func newTable[T any](kind marker.Kind) *Table[T] {
	return &Table[T]{
		kind:    kind,
		entries: make(map[string]*T),
		origins: make(map[string]marker.Identity),
	}
}

// NewTable returns a Table holding a copy of entries. Origins are left
// empty. It is meant for callers that assemble tables without declarations.
func NewTable[T any](kind marker.Kind, entries map[string]*T) *Table[T] {
	t := newTable[T](kind)
	maps.Copy(t.entries, entries)
	return t
}

// Kind returns the component kind of the table.
func (t *Table[T]) Kind() marker.Kind {
	if t == nil {
		return ""
	}
	return t.kind
}

// Len returns the number of components.
func (t *Table[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Names returns the component names in sorted order.
func (t *Table[T]) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}

// Get returns the named component.
func (t *Table[T]) Get(name string) (*T, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.entries[name]
	return v, ok
}

// Has reports whether the table holds name.
func (t *Table[T]) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Origin returns the identity that declared name.
func (t *Table[T]) Origin(name string) (marker.Identity, bool) {
	if t == nil {
		return marker.Identity{}, false
	}
	id, ok := t.origins[name]
	return id, ok
}

// Map returns a copy of the name to body mapping, or nil when the table
// is empty so that the kind is omitted from output.
func (t *Table[T]) Map() map[string]*T {
	if t.Len() == 0 {
		return nil
	}
	return maps.Clone(t.entries)
}
