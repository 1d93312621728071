// Package generator assembles OpenAPI 3.x documents from marker
// declarations and routes.
//
// A generation pass for one collection runs these stages:
//
//  1. Select the routes and declarations that belong to the collection
//     (see [Selector]).
//  2. Build info, servers, tags, security, external docs, root extensions
//     and the component tables concurrently.
//  3. Build the paths object, which may refer to the component tables.
//  4. Assemble the [oas.Document] and verify that every reference in it
//     resolves ([CheckReferences]).
//  5. Optionally fold structurally identical schemas into one component
//     and verify the references again.
//
// The first error aborts the pass; no partial document is returned.
//
// # Quick Start
//
//	cfg, err := config.Load("oasgen.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	g := generator.New(cfg, discovery.NewRegistry(cfg), routeTable)
//	doc, err := g.Generate(ctx, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := json.MarshalIndent(doc, "", "  ")
//
// # Collections
//
// Items without collection membership belong to the default collection;
// the membership "*" places an item in every collection. A collection's
// configuration may further restrict its routes by path pattern and tag.
// [Generator.GenerateAll] generates every collection concurrently.
//
// # Builders
//
// The stages are performed by builders injected with [WithComponentsBuilder],
// [WithPathsBuilder] and [WithAggregator]; the defaults come from the
// components, paths and aggregate packages. Discovery results are cached
// by the registry, builder results never are: every call returns a new
// document.
package generator
