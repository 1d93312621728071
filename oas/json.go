package oas

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// ExtensionPrefix is the prefix every specification extension key carries.
const ExtensionPrefix = "x-"

// IsExtensionKey reports whether key is a specification extension key.
func IsExtensionKey(key string) bool {
	return strings.HasPrefix(key, ExtensionPrefix)
}

// ExtensionKey returns key with the "x-" prefix added when missing.
func ExtensionKey(key string) string {
	if IsExtensionKey(key) {
		return key
	}
	return ExtensionPrefix + key
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// marshalWithExtra marshals v and flattens the extension keys of extra into
// the resulting object. encoding/json has no equivalent of yaml:",inline".
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if !IsExtensionKey(k) {
			continue
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		m[k] = raw
	}
	return json.Marshal(m)
}

// unmarshalWithExtra decodes data into v and captures extension keys in extra.
func unmarshalWithExtra(data []byte, v any, extra *map[string]any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, raw := range m {
		if !IsExtensionKey(k) {
			continue
		}
		var val any
		if err := json.Unmarshal(raw, &val); err != nil {
			return err
		}
		if *extra == nil {
			*extra = make(map[string]any)
		}
		(*extra)[k] = val
	}
	return nil
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (d *Document) MarshalJSON() ([]byte, error) {
	type alias Document
	return marshalWithExtra((*alias)(d), d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	return unmarshalWithExtra(data, (*alias)(d), &d.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (c *Components) MarshalJSON() ([]byte, error) {
	type alias Components
	return marshalWithExtra((*alias)(c), c.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (c *Components) UnmarshalJSON(data []byte) error {
	type alias Components
	return unmarshalWithExtra(data, (*alias)(c), &c.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (i *Info) MarshalJSON() ([]byte, error) {
	type alias Info
	return marshalWithExtra((*alias)(i), i.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (i *Info) UnmarshalJSON(data []byte) error {
	type alias Info
	return unmarshalWithExtra(data, (*alias)(i), &i.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (t *Tag) MarshalJSON() ([]byte, error) {
	type alias Tag
	return marshalWithExtra((*alias)(t), t.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (t *Tag) UnmarshalJSON(data []byte) error {
	type alias Tag
	return unmarshalWithExtra(data, (*alias)(t), &t.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (s *Server) MarshalJSON() ([]byte, error) {
	type alias Server
	return marshalWithExtra((*alias)(s), s.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (s *Server) UnmarshalJSON(data []byte) error {
	type alias Server
	return unmarshalWithExtra(data, (*alias)(s), &s.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (p *PathItem) MarshalJSON() ([]byte, error) {
	type alias PathItem
	return marshalWithExtra((*alias)(p), p.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (p *PathItem) UnmarshalJSON(data []byte) error {
	type alias PathItem
	return unmarshalWithExtra(data, (*alias)(p), &p.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (o *Operation) MarshalJSON() ([]byte, error) {
	type alias Operation
	return marshalWithExtra((*alias)(o), o.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (o *Operation) UnmarshalJSON(data []byte) error {
	type alias Operation
	return unmarshalWithExtra(data, (*alias)(o), &o.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (r *Response) MarshalJSON() ([]byte, error) {
	type alias Response
	return marshalWithExtra((*alias)(r), r.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (r *Response) UnmarshalJSON(data []byte) error {
	type alias Response
	return unmarshalWithExtra(data, (*alias)(r), &r.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (rb *RequestBody) MarshalJSON() ([]byte, error) {
	type alias RequestBody
	return marshalWithExtra((*alias)(rb), rb.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (rb *RequestBody) UnmarshalJSON(data []byte) error {
	type alias RequestBody
	return unmarshalWithExtra(data, (*alias)(rb), &rb.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (mt *MediaType) MarshalJSON() ([]byte, error) {
	type alias MediaType
	return marshalWithExtra((*alias)(mt), mt.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (mt *MediaType) UnmarshalJSON(data []byte) error {
	type alias MediaType
	return unmarshalWithExtra(data, (*alias)(mt), &mt.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (p *Parameter) MarshalJSON() ([]byte, error) {
	type alias Parameter
	return marshalWithExtra((*alias)(p), p.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	type alias Parameter
	return unmarshalWithExtra(data, (*alias)(p), &p.Extra)
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (s *Schema) MarshalJSON() ([]byte, error) {
	type alias Schema
	return marshalWithExtra((*alias)(s), s.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
// AdditionalProperties is decoded as *Schema when it holds an object.
func (s *Schema) UnmarshalJSON(data []byte) error {
	type alias Schema
	if err := unmarshalWithExtra(data, (*alias)(s), &s.Extra); err != nil {
		return err
	}
	if m, ok := s.AdditionalProperties.(map[string]any); ok {
		raw, err := json.Marshal(m)
		if err != nil {
			return err
		}
		ap := new(Schema)
		if err := json.Unmarshal(raw, ap); err != nil {
			return err
		}
		s.AdditionalProperties = ap
	}
	return nil
}

// MarshalJSON implements json.Marshaler, flattening Extra.
func (ss *SecurityScheme) MarshalJSON() ([]byte, error) {
	type alias SecurityScheme
	return marshalWithExtra((*alias)(ss), ss.Extra)
}

// UnmarshalJSON implements json.Unmarshaler, capturing extensions in Extra.
func (ss *SecurityScheme) UnmarshalJSON(data []byte) error {
	type alias SecurityScheme
	return unmarshalWithExtra(data, (*alias)(ss), &ss.Extra)
}

// MarshalJSON writes the default response and the status code responses
// as sibling keys.
func (r *Responses) MarshalJSON() ([]byte, error) {
	m := make(map[string]*Response, len(r.Codes)+1)
	for code, resp := range r.Codes {
		m[code] = resp
	}
	if r.Default != nil {
		m["default"] = r.Default
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements json.Unmarshaler. Extension keys are dropped.
func (r *Responses) UnmarshalJSON(data []byte) error {
	var m map[string]*Response
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for key, resp := range m {
		switch {
		case key == "default":
			r.Default = resp
		case IsExtensionKey(key):
		default:
			if r.Codes == nil {
				r.Codes = make(map[string]*Response)
			}
			r.Codes[key] = resp
		}
	}
	return nil
}

// MarshalJSON writes either the $ref or the expression map.
func (c *Callback) MarshalJSON() ([]byte, error) {
	if c.Ref != "" {
		return json.Marshal(map[string]string{"$ref": c.Ref})
	}
	if c.Expressions == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.Expressions)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Callback) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for key, raw := range m {
		if key == "$ref" {
			if err := json.Unmarshal(raw, &c.Ref); err != nil {
				return err
			}
			continue
		}
		if IsExtensionKey(key) {
			continue
		}
		item := new(PathItem)
		if err := json.Unmarshal(raw, item); err != nil {
			return err
		}
		if c.Expressions == nil {
			c.Expressions = make(map[string]*PathItem)
		}
		c.Expressions[key] = item
	}
	return nil
}
