package generator

import (
	"context"

	"github.com/erraggy/oasgen/components"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaslog"
	"github.com/erraggy/oasgen/paths"
	"github.com/erraggy/oasgen/routes"
)

// Discoverer supplies the declarations of every discoverable kind.
// *discovery.Registry implements it.
type Discoverer interface {
	DiscoverAll(ctx context.Context) (map[marker.Kind][]marker.Declaration, error)
}

// ComponentsBuilder builds the component tables. *components.Builder
// implements it.
type ComponentsBuilder interface {
	Build(ctx context.Context, decls map[marker.Kind][]marker.Declaration) (*components.Tables, error)
}

// PathsBuilder builds the paths object. *paths.Builder implements it.
type PathsBuilder interface {
	Build(ctx context.Context, ops []routes.Operation, refs paths.Refs) (oas.Paths, error)
}

// Aggregator builds the document-level objects of a collection.
// *aggregate.Builder implements it.
type Aggregator interface {
	Info(ctx context.Context, collection string) (*oas.Info, error)
	Servers(ctx context.Context, collection string) ([]*oas.Server, error)
	Tags(ctx context.Context, collection string, decls []marker.Declaration) ([]*oas.Tag, error)
	Security(ctx context.Context, collection string) ([]oas.SecurityRequirement, error)
	ExternalDocs(ctx context.Context, collection string) (*oas.ExternalDocs, error)
	Extensions(ctx context.Context, collection string, decls []marker.Declaration) (map[string]any, error)
}

// Option configures a Generator.
type Option func(*generatorConfig)

type generatorConfig struct {
	components ComponentsBuilder
	paths      PathsBuilder
	aggregate  Aggregator
	namer      *components.Namer
	dedupe     *bool
	logger     oaslog.Logger
}

// WithComponentsBuilder replaces the components builder.
func WithComponentsBuilder(b ComponentsBuilder) Option {
	return func(c *generatorConfig) {
		c.components = b
	}
}

// WithPathsBuilder replaces the paths builder.
func WithPathsBuilder(b PathsBuilder) Option {
	return func(c *generatorConfig) {
		c.paths = b
	}
}

// WithAggregator replaces the builder of info, servers, tags, security,
// external docs and root extensions.
func WithAggregator(a Aggregator) Option {
	return func(c *generatorConfig) {
		c.aggregate = a
	}
}

// WithNamer sets the namer used for definitions that are inlined rather
// than emitted as components (parameters, extensions). It should match
// the namer of the components builder. Defaults to the configured naming.
func WithNamer(n components.Namer) Option {
	return func(c *generatorConfig) {
		c.namer = &n
	}
}

// WithSchemaDeduplication overrides the dedupe_schemas configuration.
func WithSchemaDeduplication(enabled bool) Option {
	return func(c *generatorConfig) {
		c.dedupe = &enabled
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l oaslog.Logger) Option {
	return func(c *generatorConfig) {
		c.logger = l
	}
}
