package schemautil

import (
	"slices"

	"github.com/erraggy/oasgen/oas"
)

// CompareFunc compares two schemas for structural equivalence.
type CompareFunc func(left, right *oas.Schema) bool

// SchemaDeduplicator identifies and consolidates semantically identical schemas.
type SchemaDeduplicator struct {
	hasher  *SchemaHasher
	compare CompareFunc
}

// NewSchemaDeduplicator creates a new SchemaDeduplicator.
// The compare function verifies equivalence after hash grouping; nil
// uses Equal.
func NewSchemaDeduplicator(compare CompareFunc) *SchemaDeduplicator {
	if compare == nil {
		compare = Equal
	}
	return &SchemaDeduplicator{
		hasher:  NewSchemaHasher(),
		compare: compare,
	}
}

// Deduplicate identifies semantically identical schemas and consolidates them.
//
// The algorithm:
//  1. Group schemas by structural hash
//  2. Verify equivalence within each group using deep comparison
//  3. Select canonical name (alphabetically first) for each equivalence group
//  4. Build alias mapping and return only canonical schemas
func (d *SchemaDeduplicator) Deduplicate(schemas map[string]*oas.Schema) *DeduplicationResult {
	hashGroups := d.hasher.GroupByHash(schemas)

	var groups [][]string
	for _, names := range hashGroups {
		if len(names) == 1 {
			groups = append(groups, names)
			continue
		}
		groups = append(groups, d.verifyEquivalence(schemas, names)...)
	}
	return buildResult(schemas, groups)
}

// verifyEquivalence splits a hash group into true equivalence groups.
func (d *SchemaDeduplicator) verifyEquivalence(schemas map[string]*oas.Schema, names []string) [][]string {
	// Sorted so the first member of each group is stable across runs.
	slices.Sort(names)

	var groups [][]string
	for _, name := range names {
		found := -1
		for i, group := range groups {
			if d.compare(schemas[name], schemas[group[0]]) {
				found = i
				break
			}
		}
		if found >= 0 {
			groups[found] = append(groups[found], name)
		} else {
			groups = append(groups, []string{name})
		}
	}
	return groups
}

func buildResult(schemas map[string]*oas.Schema, groups [][]string) *DeduplicationResult {
	result := &DeduplicationResult{
		CanonicalSchemas:  make(map[string]*oas.Schema, len(schemas)),
		Aliases:           make(map[string]string),
		EquivalenceGroups: make(map[string][]string, len(groups)),
	}
	for _, group := range groups {
		slices.Sort(group)
		canonical := group[0]
		result.CanonicalSchemas[canonical] = schemas[canonical]
		result.EquivalenceGroups[canonical] = group
		for _, alias := range group[1:] {
			result.Aliases[alias] = canonical
			result.RemovedCount++
		}
	}
	return result
}
