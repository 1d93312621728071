package schemautil

import "github.com/erraggy/oasgen/oas"

// GetSchemaTypes returns the type(s) from a schema, handling both
// string (OAS 3.0) and []any (OAS 3.1+) representations.
//
// Examples:
//   - OAS 3.0: {"type": "string"} returns ["string"]
//   - OAS 3.1: {"type": ["string", "null"]} returns ["string", "null"]
func GetSchemaTypes(schema *oas.Schema) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}
