package discovery

import (
	"context"
	"sync"

	"github.com/erraggy/oasgen/marker"
)

// StaticScope is the scope name under which a StaticSource reports its
// declarations.
const StaticScope = "static:"

// StaticSource serves declarations registered explicitly in code.
// It is safe for concurrent use.
type StaticSource struct {
	mu    sync.RWMutex
	decls map[marker.Kind][]marker.Declaration
}

// NewStaticSource returns a StaticSource holding decls.
func NewStaticSource(decls ...marker.Declaration) *StaticSource {
	s := &StaticSource{decls: make(map[marker.Kind][]marker.Declaration)}
	s.Register(decls...)
	return s
}

// Register adds declarations. Each must have its Kind set.
func (s *StaticSource) Register(decls ...marker.Declaration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range decls {
		s.decls[d.Kind] = append(s.decls[d.Kind], d.Clone())
	}
}

// Scopes implements ScopeProvider.
func (s *StaticSource) Scopes(kind marker.Kind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.decls[kind]) == 0 {
		return nil
	}
	return []string{StaticScope}
}

// Handles implements Source.
func (*StaticSource) Handles(scope string) bool {
	return scope == StaticScope
}

// Discover implements Source.
func (s *StaticSource) Discover(_ context.Context, _ string, kind marker.Kind) ([]marker.Declaration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]marker.Declaration, len(s.decls[kind]))
	for i, d := range s.decls[kind] {
		out[i] = d.Clone()
	}
	return out, nil
}
