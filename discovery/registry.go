package discovery

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/oaslog"
)

// Registry discovers marker declarations across scopes and caches the
// results per kind for its lifetime.
//
// A Registry is safe for concurrent use. Concurrent requests for the same
// kind share one scan.
type Registry struct {
	root        string
	patterns    map[marker.Kind][]string
	sources     []Source
	useDefaults bool
	logger      oaslog.Logger

	flight singleflight.Group
	mu     sync.Mutex
	cache  map[marker.Kind][]marker.Declaration
}

// Option configures a Registry.
type Option func(*registryConfig)

type registryConfig struct {
	sources     []Source
	useDefaults bool
	logger      oaslog.Logger
}

// WithSource adds a source. Sources are consulted in the order added,
// after the built-in file and fragment sources; the first source that
// handles a scope scans it.
func WithSource(src Source) Option {
	return func(c *registryConfig) {
		c.sources = append(c.sources, src)
	}
}

// WithoutDefaultScopes disables the built-in openapi/<kind> scopes.
func WithoutDefaultScopes() Option {
	return func(c *registryConfig) {
		c.useDefaults = false
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l oaslog.Logger) Option {
	return func(c *registryConfig) {
		c.logger = l
	}
}

// NewRegistry creates a Registry for cfg. A nil cfg uses config.Default().
// The registry always scans filesystem scopes with a FileSource, and
// imports cfg.Fragments through a FragmentSource.
func NewRegistry(cfg *config.Config, opts ...Option) *Registry {
	if cfg == nil {
		cfg = config.Default()
	}
	rc := &registryConfig{useDefaults: true}
	for _, opt := range opts {
		opt(rc)
	}

	sources := []Source{NewFileSource()}
	if len(cfg.Fragments) > 0 {
		paths := make([]string, len(cfg.Fragments))
		for i, f := range cfg.Fragments {
			paths[i] = cfg.Resolve(f)
		}
		sources = append(sources, NewFragmentSource(paths...))
	}
	sources = append(sources, rc.sources...)

	patterns := make(map[marker.Kind][]string, len(cfg.Scopes))
	for _, k := range marker.DiscoverableKinds {
		if p := cfg.ScopesFor(k); len(p) > 0 {
			patterns[k] = slices.Clone(p)
		}
	}

	return &Registry{
		root:        cfg.Root,
		patterns:    patterns,
		sources:     sources,
		useDefaults: rc.useDefaults,
		logger:      oaslog.OrNop(rc.logger),
		cache:       make(map[marker.Kind][]marker.Declaration),
	}
}

// Scopes returns the scopes scanned for kind, in scan order: configured
// directories, the default directory, then scopes contributed by sources.
func (r *Registry) Scopes(kind marker.Kind) ([]string, error) {
	scopes, err := resolveScopes(r.root, r.patterns[kind], kind, r.useDefaults, r.logger)
	if err != nil {
		return nil, err
	}
	for _, src := range r.sources {
		if sp, ok := src.(ScopeProvider); ok {
			for _, s := range sp.Scopes(kind) {
				if !slices.Contains(scopes, s) {
					scopes = append(scopes, s)
				}
			}
		}
	}
	return scopes, nil
}

// Discover returns the declarations of kind, ordered by scope and then by
// position inside the scope. Each declaration identity appears once.
// The returned slice is a copy the caller owns.
func (r *Registry) Discover(ctx context.Context, kind marker.Kind) ([]marker.Declaration, error) {
	if !slices.Contains(marker.DiscoverableKinds, kind) {
		return nil, &oaserrors.ConfigError{Option: "kind", Value: string(kind), Message: "kind has no declaration scope"}
	}

	r.mu.Lock()
	cached, ok := r.cache[kind]
	r.mu.Unlock()
	if !ok {
		v, err, _ := r.flight.Do(string(kind), func() (any, error) {
			r.mu.Lock()
			done, ok := r.cache[kind]
			r.mu.Unlock()
			if ok {
				return done, nil
			}
			decls, err := r.scan(ctx, kind)
			if err != nil {
				return nil, err
			}
			r.mu.Lock()
			r.cache[kind] = decls
			r.mu.Unlock()
			return decls, nil
		})
		if err != nil {
			return nil, err
		}
		cached = v.([]marker.Declaration)
	}

	out := make([]marker.Declaration, len(cached))
	for i, d := range cached {
		out[i] = d.Clone()
	}
	return out, nil
}

// DiscoverAll discovers every kind that has a declaration scope, concurrently.
func (r *Registry) DiscoverAll(ctx context.Context) (map[marker.Kind][]marker.Declaration, error) {
	results := make([][]marker.Declaration, len(marker.DiscoverableKinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range marker.DiscoverableKinds {
		g.Go(func() error {
			decls, err := r.Discover(gctx, kind)
			results[i] = decls
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	all := make(map[marker.Kind][]marker.Declaration, len(results))
	for i, kind := range marker.DiscoverableKinds {
		all[kind] = results[i]
	}
	return all, nil
}

// Reset clears the cached declarations so the next Discover rescans.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

type declKey struct {
	kind marker.Kind
	id   marker.Identity
}

func (r *Registry) scan(ctx context.Context, kind marker.Kind) ([]marker.Declaration, error) {
	scopes, err := r.Scopes(kind)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	srcs := make([]Source, len(scopes))
	for i, scope := range scopes {
		if srcs[i] = r.sourceFor(scope); srcs[i] == nil {
			return nil, fmt.Errorf("discovery: %w", &oaserrors.DiscoveryError{Scope: scope, Kind: string(kind), Message: "no source handles scope"})
		}
	}

	results := make([][]marker.Declaration, len(scopes))
	g, gctx := errgroup.WithContext(ctx)
	for i, scope := range scopes {
		g.Go(func() error {
			decls, err := srcs[i].Discover(gctx, scope, kind)
			if err != nil {
				var discErr *oaserrors.DiscoveryError
				if errors.As(err, &discErr) {
					return err
				}
				return &oaserrors.DiscoveryError{Scope: scope, Kind: string(kind), Message: "scan failed", Cause: err}
			}
			results[i] = decls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	var out []marker.Declaration
	seen := make(map[declKey]bool)
	for _, decls := range results {
		for _, d := range decls {
			if d.Kind == "" {
				d.Kind = kind
			}
			if d.Kind != kind {
				continue
			}
			key := declKey{kind: d.Kind, id: d.ID}
			if seen[key] {
				r.logger.Debug("dropping duplicate declaration", "kind", string(kind), "id", d.ID.String())
				continue
			}
			seen[key] = true
			out = append(out, d.Clone())
		}
	}
	r.logger.Debug("discovered declarations", "kind", string(kind), "scopes", len(scopes), "count", len(out))
	return out, nil
}

func (r *Registry) sourceFor(scope string) Source {
	for _, src := range r.sources {
		if src.Handles(scope) {
			return src
		}
	}
	return nil
}
