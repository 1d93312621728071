package schemautil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/oas"
)

func address(title string) *oas.Schema {
	return &oas.Schema{
		Type:        "object",
		Title:       title,
		Description: title + " description",
		Properties: map[string]*oas.Schema{
			"street": {Type: "string"},
			"city":   {Type: "string"},
		},
		Required: []string{"street", "city"},
	}
}

func TestGetSchemaTypes(t *testing.T) {
	tests := []struct {
		name     string
		schema   *oas.Schema
		expected []string
	}{
		{name: "nil schema", schema: nil, expected: nil},
		{name: "empty type", schema: &oas.Schema{Type: ""}, expected: nil},
		{name: "string type", schema: &oas.Schema{Type: "string"}, expected: []string{"string"}},
		{name: "array of any", schema: &oas.Schema{Type: []any{"string", "null"}}, expected: []string{"string", "null"}},
		{name: "array of strings", schema: &oas.Schema{Type: []string{"integer"}}, expected: []string{"integer"}},
		{name: "unsupported", schema: &oas.Schema{Type: 42}, expected: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSchemaTypes(tt.schema))
		})
	}
}

func TestSchemaHasher_IgnoresMetadata(t *testing.T) {
	h := NewSchemaHasher()
	a := address("Address")
	b := address("Location")
	b.Required = []string{"city", "street"}

	assert.Equal(t, h.Hash(a), h.Hash(b))
	assert.Equal(t, h.Hash(a), h.Hash(a), "hash is stable")

	b.Properties["zip"] = &oas.Schema{Type: "string"}
	assert.NotEqual(t, h.Hash(a), h.Hash(b))
}

func TestSchemaHasher_Circular(t *testing.T) {
	node := &oas.Schema{Type: "object", Properties: map[string]*oas.Schema{}}
	node.Properties["next"] = node

	h := NewSchemaHasher()
	assert.Equal(t, h.Hash(node), h.Hash(node))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(address("A"), address("B")))
	assert.True(t, Equal(&oas.Schema{Type: "string", Enum: []any{}}, &oas.Schema{Type: "string"}))
	assert.False(t, Equal(&oas.Schema{Type: "string"}, &oas.Schema{Type: "string", Format: "uuid"}))
	assert.False(t, Equal(
		&oas.Schema{Ref: "#/components/schemas/A"},
		&oas.Schema{Ref: "#/components/schemas/B"},
	))
}

func TestSchemaDeduplicator(t *testing.T) {
	schemas := map[string]*oas.Schema{
		"Location": address("Location"),
		"Address":  address("Address"),
		"Shipping": address("Shipping"),
		"User":     {Type: "object", Properties: map[string]*oas.Schema{"id": {Type: "string"}}},
	}

	result := NewSchemaDeduplicator(nil).Deduplicate(schemas)
	require.Len(t, result.CanonicalSchemas, 2)
	assert.Contains(t, result.CanonicalSchemas, "Address")
	assert.Contains(t, result.CanonicalSchemas, "User")
	assert.Equal(t, 2, result.RemovedCount)
	assert.Equal(t, map[string]string{"Location": "Address", "Shipping": "Address"}, result.Aliases)
	assert.Equal(t, []string{"Address", "Location", "Shipping"}, result.EquivalenceGroups["Address"])

	assert.Equal(t, "Address", result.CanonicalName("Shipping"))
	assert.Equal(t, "User", result.CanonicalName("User"))
	assert.True(t, result.IsAlias("Location"))
	assert.False(t, result.IsAlias("Address"))
}

func TestSchemaDeduplicator_HashCollisionSplit(t *testing.T) {
	schemas := map[string]*oas.Schema{
		"A": {Type: "string"},
		"B": {Type: "string"},
		"C": {Type: "string"},
	}
	neverEqual := func(_, _ *oas.Schema) bool { return false }

	result := NewSchemaDeduplicator(neverEqual).Deduplicate(schemas)
	assert.Len(t, result.CanonicalSchemas, 3)
	assert.Empty(t, result.Aliases)
}

func TestSchemaDeduplicator_Empty(t *testing.T) {
	result := NewSchemaDeduplicator(nil).Deduplicate(nil)
	assert.Empty(t, result.CanonicalSchemas)
	assert.Zero(t, result.RemovedCount)
}
