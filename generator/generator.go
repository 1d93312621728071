package generator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasgen/aggregate"
	"github.com/erraggy/oasgen/components"
	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaslog"
	"github.com/erraggy/oasgen/paths"
	"github.com/erraggy/oasgen/routes"
)

// Result is the outcome of generating one collection.
type Result struct {
	// Collection is the generated collection.
	Collection string
	// Document is the generated document.
	Document *oas.Document
	// Operations is the number of operations in Document.
	Operations int
	// Components is the number of entries under components.
	Components int
	// RemovedSchemas is the number of schemas folded by deduplication.
	RemovedSchemas int
	// GenerateTime is the time taken to generate the document.
	GenerateTime time.Duration
}

// Generator assembles OpenAPI documents from discovered declarations and
// routes. A Generator is safe for concurrent use; every call builds a
// fresh document.
type Generator struct {
	cfg        *config.Config
	registry   Discoverer
	routes     routes.Source
	components ComponentsBuilder
	paths      PathsBuilder
	aggregate  Aggregator
	namer      components.Namer
	dedupe     bool
	logger     oaslog.Logger
}

// New returns a Generator for cfg that reads declarations from registry
// and routes from src. A nil cfg uses config.Default(); a nil src yields
// documents without operations. Builders not replaced through options
// are the defaults of the components, paths and aggregate packages.
func New(cfg *config.Config, registry Discoverer, src routes.Source, opts ...Option) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	gc := &generatorConfig{}
	for _, opt := range opts {
		opt(gc)
	}
	logger := oaslog.OrNop(gc.logger)

	g := &Generator{
		cfg:        cfg,
		registry:   registry,
		routes:     src,
		components: gc.components,
		paths:      gc.paths,
		aggregate:  gc.aggregate,
		namer:      components.NamerFor(cfg),
		dedupe:     cfg.DedupeSchemas,
		logger:     logger,
	}
	if gc.namer != nil {
		g.namer = *gc.namer
	}
	if gc.dedupe != nil {
		g.dedupe = *gc.dedupe
	}
	if g.components == nil {
		g.components = components.NewBuilder(components.WithNamer(g.namer), components.WithLogger(logger))
	}
	if g.paths == nil {
		g.paths = paths.NewBuilder(paths.WithLogger(logger))
	}
	if g.aggregate == nil {
		g.aggregate = aggregate.New(cfg, aggregate.WithLogger(logger))
	}
	return g
}

// Collections returns the names of every collection, sorted.
func (g *Generator) Collections() []string {
	return g.cfg.CollectionNames()
}

// Generate builds the document of the named collection. An empty name
// selects the default collection.
func (g *Generator) Generate(ctx context.Context, collection string) (*oas.Document, error) {
	res, err := g.GenerateResult(ctx, collection)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// GenerateResult builds the document of the named collection and reports
// what it contains.
func (g *Generator) GenerateResult(ctx context.Context, collection string) (*Result, error) {
	start := time.Now()
	sel, err := NewSelector(g.cfg, collection)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	logger := g.logger.With("collection", sel.Collection)

	all, err := g.discover(ctx)
	if err != nil {
		return nil, err
	}
	decls := sel.Declarations(all)
	ops, err := g.listRoutes(ctx)
	if err != nil {
		return nil, err
	}
	ops = sel.Routes(ops)
	logger.Debug("selected", "routes", len(ops))

	doc := &oas.Document{OpenAPI: g.cfg.OpenAPI}
	var tables *components.Tables

	g1, gctx := errgroup.WithContext(ctx)
	g1.Go(func() (err error) {
		doc.Info, err = g.aggregate.Info(gctx, sel.Collection)
		return err
	})
	g1.Go(func() (err error) {
		doc.Servers, err = g.aggregate.Servers(gctx, sel.Collection)
		return err
	})
	g1.Go(func() (err error) {
		doc.Tags, err = g.aggregate.Tags(gctx, sel.Collection, decls[marker.KindTag])
		return err
	})
	g1.Go(func() (err error) {
		doc.Security, err = g.aggregate.Security(gctx, sel.Collection)
		return err
	})
	g1.Go(func() (err error) {
		doc.ExternalDocs, err = g.aggregate.ExternalDocs(gctx, sel.Collection)
		return err
	})
	g1.Go(func() (err error) {
		doc.Extra, err = g.aggregate.Extensions(gctx, sel.Collection, decls[marker.KindExtension])
		return err
	})
	g1.Go(func() (err error) {
		tables, err = g.components.Build(gctx, decls)
		return err
	})
	if err := g1.Wait(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	refs := paths.Refs{Tables: tables, Definitions: make(map[marker.Kind]*components.Index)}
	for _, kind := range []marker.Kind{marker.KindParameters, marker.KindResponse, marker.KindExtension} {
		idx, err := components.NewIndex(kind, decls[kind], g.namer)
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		refs.Definitions[kind] = idx
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	doc.Paths, err = g.paths.Build(ctx, ops, refs)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	if doc.Paths == nil {
		doc.Paths = oas.Paths{}
	}
	doc.Components = tables.Components()

	if err := CheckReferences(ctx, doc); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	res := &Result{Collection: sel.Collection, Document: doc}
	if g.dedupe {
		res.RemovedSchemas, err = dedupeSchemas(doc)
		if err != nil {
			return nil, fmt.Errorf("generator: deduplicating schemas: %w", err)
		}
		if res.RemovedSchemas > 0 {
			logger.Debug("deduplicated schemas", "removed", res.RemovedSchemas)
			if err := CheckReferences(ctx, doc); err != nil {
				return nil, fmt.Errorf("generator: after deduplication: %w", err)
			}
		}
	}

	for _, item := range doc.Paths {
		res.Operations += len(item.Operations())
	}
	res.Components = countComponents(doc.Components)
	res.GenerateTime = time.Since(start)
	logger.Info("generated document",
		"paths", len(doc.Paths),
		"operations", res.Operations,
		"components", res.Components,
		"duration", res.GenerateTime,
	)
	return res, nil
}

// GenerateAll builds the document of every collection concurrently. The
// results are ordered by collection name.
func (g *Generator) GenerateAll(ctx context.Context) ([]*Result, error) {
	names := g.Collections()
	results := make([]*Result, len(names))
	eg, ectx := errgroup.WithContext(ctx)
	for i, name := range names {
		eg.Go(func() (err error) {
			results[i], err = g.GenerateResult(ectx, name)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) discover(ctx context.Context) (map[marker.Kind][]marker.Declaration, error) {
	if g.registry == nil {
		return map[marker.Kind][]marker.Declaration{}, nil
	}
	all, err := g.registry.DiscoverAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	return all, nil
}

func (g *Generator) listRoutes(ctx context.Context) ([]routes.Operation, error) {
	if g.routes == nil {
		return nil, nil
	}
	ops, err := g.routes.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: listing routes: %w", err)
	}
	return ops, nil
}

func countComponents(c *oas.Components) int {
	if c == nil {
		return 0
	}
	return len(c.Schemas) + len(c.Responses) + len(c.RequestBodies) + len(c.Callbacks) + len(c.SecuritySchemes)
}

// With returns a copy of g with opts applied. Builders the options do not
// replace are shared with g, except that a new namer rebuilds the default
// components builder.
func (g *Generator) With(opts ...Option) *Generator {
	gc := &generatorConfig{}
	for _, opt := range opts {
		opt(gc)
	}
	c := *g
	if gc.logger != nil {
		c.logger = gc.logger
	}
	if gc.namer != nil {
		c.namer = *gc.namer
		c.components = components.NewBuilder(components.WithNamer(c.namer), components.WithLogger(c.logger))
	}
	if gc.components != nil {
		c.components = gc.components
	}
	if gc.paths != nil {
		c.paths = gc.paths
	}
	if gc.aggregate != nil {
		c.aggregate = gc.aggregate
	}
	if gc.dedupe != nil {
		c.dedupe = *gc.dedupe
	}
	return &c
}
