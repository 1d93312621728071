package generator

import (
	"path"
	"slices"
	"strings"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/routes"
)

// Selector decides which routes and declarations belong to a collection.
type Selector struct {
	// Collection is the selected collection.
	Collection string
	// DefaultCollection is the collection of items with no membership.
	DefaultCollection string
	// IncludePaths keeps only routes whose template matches a pattern.
	IncludePaths []string
	// ExcludePaths drops routes whose template matches a pattern.
	ExcludePaths []string
	// IncludeTags keeps only routes tagged with one of the names.
	IncludeTags []string
}

// NewSelector returns the selector of the named collection. An unknown
// collection is a ConfigError.
func NewSelector(cfg *config.Config, collection string) (*Selector, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if collection == "" {
		collection = cfg.DefaultCollection
	}
	coll, ok := cfg.Collection(collection)
	if !ok {
		return nil, &oaserrors.ConfigError{
			Option:  "collection",
			Value:   collection,
			Message: "unknown collection, known: " + strings.Join(cfg.CollectionNames(), ", "),
		}
	}
	return &Selector{
		Collection:        collection,
		DefaultCollection: cfg.DefaultCollection,
		IncludePaths:      slices.Clone(coll.IncludePaths),
		ExcludePaths:      slices.Clone(coll.ExcludePaths),
		IncludeTags:       slices.Clone(coll.IncludeTags),
	}, nil
}

// Declaration reports whether d belongs to the collection.
func (s *Selector) Declaration(d marker.Declaration) bool {
	return d.InCollection(s.Collection, s.DefaultCollection)
}

// Declarations returns the members of the collection, per kind.
func (s *Selector) Declarations(all map[marker.Kind][]marker.Declaration) map[marker.Kind][]marker.Declaration {
	out := make(map[marker.Kind][]marker.Declaration, len(all))
	for kind, decls := range all {
		var kept []marker.Declaration
		for _, d := range decls {
			if s.Declaration(d) {
				kept = append(kept, d)
			}
		}
		out[kind] = kept
	}
	return out
}

// Route reports whether op belongs to the collection: it must be a member,
// match the path rules, and carry one of the included tags when any are
// configured.
func (s *Selector) Route(op routes.Operation) bool {
	if !op.InCollection(s.Collection, s.DefaultCollection) {
		return false
	}
	template := routes.NormalizePath(op.Path)
	if len(s.IncludePaths) > 0 && !matchAny(s.IncludePaths, template) {
		return false
	}
	if matchAny(s.ExcludePaths, template) {
		return false
	}
	if len(s.IncludeTags) > 0 {
		return slices.ContainsFunc(RouteTags(op), func(tag string) bool {
			return slices.Contains(s.IncludeTags, tag)
		})
	}
	return true
}

// Routes returns copies of the member routes. Markers restricted to other
// collections are dropped; markers without membership always apply.
func (s *Selector) Routes(ops []routes.Operation) []routes.Operation {
	var out []routes.Operation
	for _, op := range ops {
		if !s.Route(op) {
			continue
		}
		op = op.Clone()
		op.Markers = slices.DeleteFunc(op.Markers, func(m marker.Declaration) bool {
			return len(m.Collections) > 0 && !s.Declaration(m)
		})
		out = append(out, op)
	}
	return out
}

// RouteTags returns the tag names attached to op, from operation
// metadata and tag markers, in marker order.
func RouteTags(op routes.Operation) []string {
	var tags []string
	add := func(name string) {
		if name != "" && !slices.Contains(tags, name) {
			tags = append(tags, name)
		}
	}
	for _, m := range op.Markers {
		switch m.Kind {
		case marker.KindOperation:
			list, _ := m.List("tags")
			for _, t := range list {
				add(t)
			}
		case marker.KindTag:
			switch {
			case m.Ref != "":
				add(m.Ref)
			case m.Name != "":
				add(m.Name)
			default:
				add(m.Attr("name"))
			}
		}
	}
	return tags
}

// matchAny reports whether template matches one of patterns. A pattern
// ending in "/*" matches its prefix and everything below it; other
// patterns use path.Match.
func matchAny(patterns []string, template string) bool {
	for _, p := range patterns {
		p = "/" + strings.TrimPrefix(p, "/")
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			if template == prefix || strings.HasPrefix(template, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, template); ok {
			return true
		}
	}
	return false
}
