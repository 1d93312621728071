package schemautil

import (
	"fmt"
	"hash"
	"hash/fnv"
	"slices"
	"strconv"

	"github.com/erraggy/oasgen/oas"
)

// SchemaHasher computes structural hashes for schemas.
// Structural hashes ignore metadata fields (title, description, example, deprecated)
// and focus on fields that affect the schema's semantic meaning.
type SchemaHasher struct {
	visited map[*oas.Schema]bool
}

// NewSchemaHasher creates a new SchemaHasher.
func NewSchemaHasher() *SchemaHasher {
	return &SchemaHasher{
		visited: make(map[*oas.Schema]bool),
	}
}

// Hash computes a structural hash for a schema.
// Hash collisions are possible; use deep comparison to verify equivalence.
func (h *SchemaHasher) Hash(schema *oas.Schema) uint64 {
	clear(h.visited)
	hasher := fnv.New64a()
	h.hashSchema(hasher, schema)
	return hasher.Sum64()
}

// GroupByHash groups schema names by structural hash.
func (h *SchemaHasher) GroupByHash(schemas map[string]*oas.Schema) map[uint64][]string {
	groups := make(map[uint64][]string)
	for name, schema := range schemas {
		hashVal := h.Hash(schema)
		groups[hashVal] = append(groups[hashVal], name)
	}
	return groups
}

func (h *SchemaHasher) hashSchema(hasher hash.Hash64, schema *oas.Schema) {
	if schema == nil {
		h.writeString(hasher, "nil")
		return
	}

	if h.visited[schema] {
		h.writeString(hasher, "circular")
		return
	}
	h.visited[schema] = true
	defer delete(h.visited, schema)

	// A reference is the whole schema.
	if schema.Ref != "" {
		h.writeString(hasher, "$ref:"+schema.Ref)
		return
	}

	h.writeString(hasher, "type:")
	for _, t := range sortedCopy(GetSchemaTypes(schema)) {
		h.writeString(hasher, t)
	}
	h.writeString(hasher, "format:"+schema.Format)
	h.writeString(hasher, "pattern:"+schema.Pattern)

	// Enum (order matters)
	if len(schema.Enum) > 0 {
		h.writeString(hasher, "enum:")
		for _, v := range schema.Enum {
			h.writeString(hasher, fmt.Sprintf("%v", v))
		}
	}
	if schema.Const != nil {
		h.writeString(hasher, fmt.Sprintf("const:%v", schema.Const))
	}

	if len(schema.Required) > 0 {
		h.writeString(hasher, "required:")
		for _, r := range sortedCopy(schema.Required) {
			h.writeString(hasher, r)
		}
	}

	if len(schema.Properties) > 0 {
		h.writeString(hasher, "properties:")
		for _, k := range sortedCopy(mapKeys(schema.Properties)) {
			h.writeString(hasher, k)
			h.hashSchema(hasher, schema.Properties[k])
		}
	}

	switch ap := schema.AdditionalProperties.(type) {
	case *oas.Schema:
		h.writeString(hasher, "additionalProperties:")
		h.hashSchema(hasher, ap)
	case bool:
		h.writeString(hasher, "additionalProperties:"+strconv.FormatBool(ap))
	}

	if schema.Items != nil {
		h.writeString(hasher, "items:")
		h.hashSchema(hasher, schema.Items)
	}

	h.hashConstraints(hasher, schema)
	h.hashComposition(hasher, schema)

	if schema.Nullable {
		h.writeString(hasher, "nullable:true")
	}
	if schema.ReadOnly {
		h.writeString(hasher, "readOnly:true")
	}
	if schema.WriteOnly {
		h.writeString(hasher, "writeOnly:true")
	}

	if schema.Discriminator != nil {
		h.writeString(hasher, "discriminator:"+schema.Discriminator.PropertyName)
		for _, k := range sortedCopy(mapKeys(schema.Discriminator.Mapping)) {
			h.writeString(hasher, k)
			h.writeString(hasher, schema.Discriminator.Mapping[k])
		}
	}
}

// hashConstraints hashes numeric, string, array and object validation fields.
func (h *SchemaHasher) hashConstraints(hasher hash.Hash64, schema *oas.Schema) {
	floats := []struct {
		name string
		v    *float64
	}{
		{"minimum", schema.Minimum},
		{"maximum", schema.Maximum},
		{"multipleOf", schema.MultipleOf},
	}
	for _, f := range floats {
		if f.v != nil {
			h.writeString(hasher, f.name+":"+strconv.FormatFloat(*f.v, 'g', -1, 64))
		}
	}
	if schema.ExclusiveMinimum != nil {
		h.writeString(hasher, fmt.Sprintf("exclusiveMinimum:%v", schema.ExclusiveMinimum))
	}
	if schema.ExclusiveMaximum != nil {
		h.writeString(hasher, fmt.Sprintf("exclusiveMaximum:%v", schema.ExclusiveMaximum))
	}

	ints := []struct {
		name string
		v    *int
	}{
		{"minLength", schema.MinLength},
		{"maxLength", schema.MaxLength},
		{"minItems", schema.MinItems},
		{"maxItems", schema.MaxItems},
		{"minProperties", schema.MinProperties},
		{"maxProperties", schema.MaxProperties},
	}
	for _, i := range ints {
		if i.v != nil {
			h.writeString(hasher, i.name+":"+strconv.Itoa(*i.v))
		}
	}
	if schema.UniqueItems {
		h.writeString(hasher, "uniqueItems:true")
	}
}

func (h *SchemaHasher) hashComposition(hasher hash.Hash64, schema *oas.Schema) {
	for _, c := range []struct {
		name    string
		schemas []*oas.Schema
	}{
		{"allOf:", schema.AllOf},
		{"anyOf:", schema.AnyOf},
		{"oneOf:", schema.OneOf},
	} {
		if len(c.schemas) == 0 {
			continue
		}
		h.writeString(hasher, c.name)
		for _, s := range c.schemas {
			h.hashSchema(hasher, s)
		}
	}
	if schema.Not != nil {
		h.writeString(hasher, "not:")
		h.hashSchema(hasher, schema.Not)
	}
}

// writeString writes a length-prefixed string so adjacent values cannot
// run together.
func (h *SchemaHasher) writeString(hasher hash.Hash64, s string) {
	_, _ = hasher.Write([]byte(strconv.Itoa(len(s))))
	_, _ = hasher.Write([]byte{':'})
	_, _ = hasher.Write([]byte(s))
}

func sortedCopy(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
