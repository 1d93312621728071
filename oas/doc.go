// Package oas provides the OpenAPI 3.x document model produced by the generator.
//
// The types mirror the OpenAPI Specification objects that generation can
// emit. Every object that may carry specification extensions has an Extra
// map. For YAML the map is inlined by the encoder; for JSON the custom
// marshalers flatten its "x-" keys into the enclosing object.
//
// Output is deterministic: maps are written with sorted keys by both the
// JSON and YAML encoders, and slices keep the order the generator assigns.
//
// # References
//
// The package also defines helpers for local component references:
//
//	ref := oas.SchemaRef("User") // "#/components/schemas/User"
//	section, name, ok := oas.ParseComponentRef(ref)
//	// section == "schemas", name == "User", ok == true
package oas
