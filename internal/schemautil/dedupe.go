// Package schemautil groups structurally identical schemas so that
// duplicates can be folded into one canonical component.
package schemautil

import "github.com/erraggy/oasgen/oas"

// DeduplicationResult contains the outcome of schema deduplication.
type DeduplicationResult struct {
	// CanonicalSchemas maps canonical names to their schema definitions.
	// Only canonical schemas are included; duplicates are removed.
	CanonicalSchemas map[string]*oas.Schema

	// Aliases maps alias schema names to their canonical name.
	// All references to alias names should be rewritten to canonical names.
	Aliases map[string]string

	// RemovedCount is the number of duplicate schemas that were removed.
	RemovedCount int

	// EquivalenceGroups maps canonical names to all equivalent schema names.
	// Includes the canonical name itself as the first element.
	EquivalenceGroups map[string][]string
}

// CanonicalName returns the canonical name for a schema name.
// If the name is not an alias, it returns the name unchanged.
func (r *DeduplicationResult) CanonicalName(name string) string {
	if canonical, ok := r.Aliases[name]; ok {
		return canonical
	}
	return name
}

// IsAlias returns true if the given name is an alias (not canonical).
func (r *DeduplicationResult) IsAlias(name string) bool {
	_, ok := r.Aliases[name]
	return ok
}
