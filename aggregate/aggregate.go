// Package aggregate builds the document-level objects that come from
// static configuration and from tag and extension declarations: info,
// servers, tags, security, external docs and root extensions.
package aggregate

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/oaslog"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l oaslog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// Builder builds document-level objects for a collection. Collection
// overrides are merged over the base configuration. Every call returns
// fresh values that share nothing with the configuration.
type Builder struct {
	cfg    *config.Config
	logger oaslog.Logger
}

// New returns a Builder for cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) *Builder {
	if cfg == nil {
		cfg = config.Default()
	}
	b := &Builder{cfg: cfg}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = oaslog.OrNop(b.logger)
	return b
}

func (b *Builder) collection(name string) (*config.Collection, error) {
	coll, ok := b.cfg.Collection(name)
	if !ok {
		return nil, &oaserrors.ConfigError{Option: "collection", Value: name, Message: "unknown collection"}
	}
	return coll, nil
}

// Info returns the info object: the collection's info merged over the
// base info.
func (b *Builder) Info(_ context.Context, collection string) (*oas.Info, error) {
	coll, err := b.collection(collection)
	if err != nil {
		return nil, err
	}
	info := config.MergeInfo(b.cfg.Info, coll.Info)
	if info.Contact != nil {
		c := *info.Contact
		info.Contact = &c
	}
	if info.License != nil {
		l := *info.License
		info.License = &l
	}
	if info.Title == "" || info.Version == "" {
		return nil, &oaserrors.ConfigError{Option: "info", Value: collection, Message: "title and version are required"}
	}
	return info, nil
}

// Servers returns the collection's servers, or the base servers when the
// collection names none.
func (b *Builder) Servers(_ context.Context, collection string) ([]*oas.Server, error) {
	coll, err := b.collection(collection)
	if err != nil {
		return nil, err
	}
	src := b.cfg.Servers
	if len(coll.Servers) > 0 {
		src = coll.Servers
	}
	if len(src) == 0 {
		return nil, nil
	}
	servers := make([]*oas.Server, 0, len(src))
	for _, s := range src {
		if s == nil {
			continue
		}
		c := *s
		c.Variables = maps.Clone(s.Variables)
		c.Extra = maps.Clone(s.Extra)
		servers = append(servers, &c)
	}
	return servers, nil
}

// Tags returns the configured tags (base order, with collection entries
// replacing base entries of the same name and new ones appended),
// followed by the tags declared in decls sorted by name. Each name
// appears once; configured entries win over declared ones.
func (b *Builder) Tags(_ context.Context, collection string, decls []marker.Declaration) ([]*oas.Tag, error) {
	coll, err := b.collection(collection)
	if err != nil {
		return nil, err
	}

	var tags []*oas.Tag
	index := make(map[string]int)
	put := func(t *oas.Tag, replace bool) {
		if t == nil || t.Name == "" {
			return
		}
		c := *t
		c.Extra = maps.Clone(t.Extra)
		if i, ok := index[c.Name]; ok {
			if replace {
				tags[i] = &c
			}
			return
		}
		index[c.Name] = len(tags)
		tags = append(tags, &c)
	}

	for _, t := range b.cfg.Tags {
		put(t, false)
	}
	for _, t := range coll.Tags {
		put(t, true)
	}

	declared := make([]*oas.Tag, 0, len(decls))
	for _, d := range decls {
		if d.IsUsage() {
			continue
		}
		t, err := tagFromDeclaration(d)
		if err != nil {
			return nil, err
		}
		declared = append(declared, t)
	}
	// Stable so that the first declaration of a repeated name wins.
	slices.SortStableFunc(declared, func(x, y *oas.Tag) int { return cmp.Compare(x.Name, y.Name) })
	for _, t := range declared {
		if _, ok := index[t.Name]; ok {
			b.logger.Debug("tag already configured", "tag", t.Name)
		}
		put(t, false)
	}

	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

func tagFromDeclaration(d marker.Declaration) (*oas.Tag, error) {
	if d.Factory != nil {
		tf, ok := d.Factory.(marker.TagFactory)
		if !ok {
			return nil, &oaserrors.ConfigError{
				Option:  "factory",
				Value:   d.ID.String(),
				Message: fmt.Sprintf("tag factory is %T, want marker.TagFactory", d.Factory),
			}
		}
		t, err := tf.BuildTag()
		if err != nil {
			return nil, fmt.Errorf("aggregate: building tag declared by %s: %w", d.ID, err)
		}
		if t == nil {
			return nil, &oaserrors.ConfigError{Option: "factory", Value: d.ID.String(), Message: "tag factory returned nil"}
		}
		return t, nil
	}
	name := d.Name
	if name == "" {
		name = d.Attr("name")
	}
	if name == "" {
		name = d.ID.ShortName()
	}
	return &oas.Tag{Name: name, Description: d.Attr("description")}, nil
}

// Security returns the document-level security requirements: the
// collection's when it names any, otherwise the base requirements.
func (b *Builder) Security(_ context.Context, collection string) ([]oas.SecurityRequirement, error) {
	coll, err := b.collection(collection)
	if err != nil {
		return nil, err
	}
	src := b.cfg.Security
	if coll.Security != nil {
		src = coll.Security
	}
	if src == nil {
		return nil, nil
	}
	out := make([]oas.SecurityRequirement, len(src))
	for i, req := range src {
		c := make(oas.SecurityRequirement, len(req))
		for name, scopes := range req {
			if scopes == nil {
				scopes = []string{}
			}
			c[name] = slices.Clone(scopes)
		}
		out[i] = c
	}
	return out, nil
}

// ExternalDocs returns the collection's external docs, or the base ones.
func (b *Builder) ExternalDocs(_ context.Context, collection string) (*oas.ExternalDocs, error) {
	coll, err := b.collection(collection)
	if err != nil {
		return nil, err
	}
	src := b.cfg.ExternalDocs
	if coll.ExternalDocs != nil {
		src = coll.ExternalDocs
	}
	if src == nil {
		return nil, nil
	}
	c := *src
	return &c, nil
}

// Extensions returns the root extensions: configured extensions with the
// collection's merged over them, then the document-level extension
// declarations in decls (those with target=document) in order. Keys get
// the "x-" prefix when missing; configured keys win.
func (b *Builder) Extensions(_ context.Context, collection string, decls []marker.Declaration) (map[string]any, error) {
	coll, err := b.collection(collection)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	for k, v := range config.MergeExtensions(b.cfg.Extensions, coll.Extensions) {
		out[oas.ExtensionKey(k)] = v
	}
	for _, d := range decls {
		if d.IsUsage() || d.Attr(marker.AttrTarget) != marker.TargetDocument {
			continue
		}
		key, value, err := d.Extension()
		if err != nil {
			return nil, fmt.Errorf("aggregate: building extension declared by %s: %w", d.ID, err)
		}
		if key == "" {
			return nil, &oaserrors.ConfigError{Option: "extension", Value: d.ID.String(), Message: "extension has no key"}
		}
		key = oas.ExtensionKey(key)
		if _, taken := out[key]; !taken {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
