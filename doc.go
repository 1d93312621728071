// Package oasgen generates OpenAPI 3 documents from the code of an
// application instead of maintaining them by hand.
//
// Developers attach markers to code elements: definitions (schemas,
// responses, request bodies, callbacks, security schemes, parameter sets,
// tags, and x-* extensions) and usages that connect route handlers to
// those definitions. oasgen discovers the markers, builds uniquely named
// components, assembles paths from the application's routes, and returns
// a complete *oas.Document per collection.
//
// # Packages
//
//   - marker: the declaration model, kinds, levels and factory contracts
//   - discovery: the declaration registry and its sources (YAML marker
//     files, OpenAPI fragments, explicit registration)
//   - routes: the route model, a route table, and route files
//   - components: one builder per component kind and the component index
//   - paths: the path and operation builder
//   - aggregate: info, servers, tags, security and extensions per collection
//   - generator: the pipeline, collection selection and reference integrity
//   - scan: the //openapi: directive scanner and registration code renderer
//   - walker: a document walker used for reference checks and rewrites
//   - config: the oasgen.yaml configuration
//
// # Quick Start
//
// Register declarations and routes, then generate:
//
//	src := discovery.NewStaticSource(
//		marker.Declaration{
//			ID:   marker.Identity{Type: "models.PetSchema"},
//			Kind: marker.KindSchema,
//			Factory: marker.SchemaFunc(func() (*oas.Schema, error) {
//				return &oas.Schema{Type: "object"}, nil
//			}),
//		},
//	)
//	cfg := config.Default()
//	reg := discovery.NewRegistry(cfg, discovery.WithSource(src), discovery.WithoutDefaultScopes())
//
//	t := routes.NewTable()
//	t.Handle("GET", "/pets/{id}", marker.Identity{Type: "handlers.Pets", Method: "Show"})
//
//	doc, err := generator.New(cfg, reg, t).Generate(ctx, "")
//
// A project that keeps its markers in files generates from its
// configuration alone:
//
//	cfg, err := config.Load("oasgen.yaml")
//	g, err := generator.NewProject(cfg)
//	doc, err := g.Generate(ctx, "admin")
//
// The oasgen command wraps the same pipeline: oasgen generate writes a
// document, oasgen scan renders registration code from //openapi:
// directives, and oasgen mcp serves generation to MCP clients.
package oasgen
