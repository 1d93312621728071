package discovery

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
)

// FragmentScopePrefix prefixes the scope names a FragmentSource reports.
const FragmentScopePrefix = "fragment:"

// FragmentSource imports the components, tags, and root extensions of
// hand-written OpenAPI 3 documents as declarations. Each document is one
// scope. Component keys become explicit names, so fragment names are
// never case-converted or suffix-stripped.
type FragmentSource struct {
	paths []string

	mu   sync.Mutex
	docs map[string]*openapi3.T
}

// NewFragmentSource returns a FragmentSource for the given document paths.
func NewFragmentSource(paths ...string) *FragmentSource {
	return &FragmentSource{
		paths: slices.Clone(paths),
		docs:  make(map[string]*openapi3.T),
	}
}

// Scopes implements ScopeProvider.
func (f *FragmentSource) Scopes(kind marker.Kind) []string {
	if kind == marker.KindOperation {
		return nil
	}
	scopes := make([]string, len(f.paths))
	for i, p := range f.paths {
		scopes[i] = FragmentScopePrefix + p
	}
	return scopes
}

// Handles implements Source.
func (*FragmentSource) Handles(scope string) bool {
	return strings.HasPrefix(scope, FragmentScopePrefix)
}

// Discover implements Source.
func (f *FragmentSource) Discover(ctx context.Context, scope string, kind marker.Kind) ([]marker.Declaration, error) {
	path := strings.TrimPrefix(scope, FragmentScopePrefix)
	doc, err := f.load(ctx, path)
	if err != nil {
		return nil, &oaserrors.DiscoveryError{Scope: scope, Kind: string(kind), Location: path, Message: "cannot load OpenAPI fragment", Cause: err}
	}

	var entries []fragmentEntry
	c := doc.Components
	switch kind {
	case marker.KindSchema:
		if c != nil {
			entries = collect(c.Schemas, oas.RefPrefixSchemas)
		}
	case marker.KindResponse:
		if c != nil {
			entries = collect(c.Responses, oas.RefPrefixResponses)
		}
	case marker.KindRequestBody:
		if c != nil {
			entries = collect(c.RequestBodies, oas.RefPrefixRequestBodies)
		}
	case marker.KindCallback:
		if c != nil {
			entries = collect(c.Callbacks, oas.RefPrefixCallbacks)
		}
	case marker.KindSecurityScheme:
		if c != nil {
			entries = collect(c.SecuritySchemes, oas.RefPrefixSecuritySchemes)
		}
	case marker.KindParameters:
		if c != nil {
			entries = collect(c.Parameters, oas.RefPrefixParameters)
			for i := range entries {
				entries[i].list = true
			}
		}
	case marker.KindTag:
		for _, tag := range doc.Tags {
			if tag != nil {
				entries = append(entries, fragmentEntry{name: tag.Name, pointer: "#/tags/" + tag.Name, value: tag})
			}
		}
	case marker.KindExtension:
		for _, key := range slices.Sorted(maps.Keys(doc.Extensions)) {
			if oas.IsExtensionKey(key) {
				entries = append(entries, fragmentEntry{name: key, pointer: "#/" + key, value: doc.Extensions[key]})
			}
		}
	}

	decls := make([]marker.Declaration, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e.value)
		if err != nil {
			return nil, &oaserrors.DiscoveryError{Scope: scope, Kind: string(kind), Location: path + e.pointer, Message: "cannot encode fragment entry", Cause: err}
		}
		if e.list {
			data = append(append([]byte{'['}, data...), ']')
		}
		decl := marker.Declaration{
			ID:    marker.Identity{Type: e.name, Location: path + e.pointer},
			Kind:  kind,
			Name:  e.name,
			Level: marker.LevelClass,
		}
		if kind == marker.KindExtension {
			// Root extensions of a fragment apply to the generated document.
			decl.Attrs = map[string]any{marker.AttrTarget: marker.TargetDocument}
		}
		factory, err := jsonFactory(kind, data, decl)
		if err != nil {
			return nil, &oaserrors.DiscoveryError{Scope: scope, Kind: string(kind), Location: decl.ID.Location, Message: "invalid fragment entry", Cause: err}
		}
		decl.Factory = factory
		decls = append(decls, decl)
	}
	return decls, nil
}

type fragmentEntry struct {
	name    string
	pointer string
	value   any
	list    bool
}

func collect[V any](m map[string]V, prefix string) []fragmentEntry {
	entries := make([]fragmentEntry, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, fragmentEntry{name: name, pointer: prefix + name, value: m[name]})
	}
	return entries
}

func (f *FragmentSource) load(ctx context.Context, path string) (*openapi3.T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[path]; ok {
		return doc, nil
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	f.docs[path] = doc
	return doc, nil
}
