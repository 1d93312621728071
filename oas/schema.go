package oas

// Schema represents a JSON Schema as used by OAS 3.0 and 3.1+ documents
type Schema struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Examples    []any  `yaml:"examples,omitempty" json:"examples,omitempty"`

	// Type validation
	Type  any   `yaml:"type,omitempty" json:"type,omitempty"` // string or []string (OAS 3.1+)
	Enum  []any `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const any   `yaml:"const,omitempty" json:"const,omitempty"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in 3.0, number in 3.1+
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"` // bool in 3.0, number in 3.1+

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`

	// Array validation
	Items       *Schema `yaml:"items,omitempty" json:"items,omitempty"`
	MaxItems    *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`

	// Object validation
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *Schema or bool
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`
	MaxProperties        *int               `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int               `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// OAS specific
	Nullable      bool           `yaml:"nullable,omitempty" json:"nullable,omitempty"` // OAS 3.0 only
	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`
	ReadOnly      bool           `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly     bool           `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`
	ExternalDocs  *ExternalDocs  `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Example       any            `yaml:"example,omitempty" json:"example,omitempty"`
	Deprecated    bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Discriminator represents a discriminator for polymorphism
type Discriminator struct {
	PropertyName string            `yaml:"propertyName" json:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
}

// Children returns every directly nested schema, in a stable order.
// Map-valued children are ordered by key.
func (s *Schema) Children() []*Schema {
	if s == nil {
		return nil
	}
	var out []*Schema
	for _, name := range sortedKeys(s.Properties) {
		out = append(out, s.Properties[name])
	}
	if s.Items != nil {
		out = append(out, s.Items)
	}
	if ap, ok := s.AdditionalProperties.(*Schema); ok && ap != nil {
		out = append(out, ap)
	}
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	if s.Not != nil {
		out = append(out, s.Not)
	}
	return out
}
