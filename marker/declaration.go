package marker

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Level is the attachment level of a usage marker.
// Higher levels take precedence: method > class > group.
type Level int

const (
	// LevelGroup marks a marker attached to a route group.
	LevelGroup Level = iota
	// LevelClass marks a marker attached to a handler type.
	LevelClass
	// LevelMethod marks a marker attached to a handler method.
	LevelMethod
)

func (l Level) String() string {
	switch l {
	case LevelGroup:
		return "group"
	case LevelClass:
		return "class"
	case LevelMethod:
		return "method"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Identity identifies the code element that carries a marker.
type Identity struct {
	// Type is the fully qualified declaring type, e.g. "example.com/app/models.User".
	Type string
	// Method is the method name for method-level markers.
	Method string
	// Location is the source position or file the marker was read from.
	Location string
}

// String returns "Type[.Method][ (Location)]".
func (id Identity) String() string {
	var sb strings.Builder
	sb.WriteString(id.Type)
	if id.Method != "" {
		sb.WriteByte('.')
		sb.WriteString(id.Method)
	}
	if id.Location != "" {
		sb.WriteString(" (")
		sb.WriteString(id.Location)
		sb.WriteByte(')')
	}
	return sb.String()
}

// ShortName returns the unqualified type name, i.e. the part of Type after
// the last '/', '.', or '\'.
func (id Identity) ShortName() string {
	t := id.Type
	if i := strings.LastIndexAny(t, `/.\`); i >= 0 {
		t = t[i+1:]
	}
	return t
}

// Declaration is a marker attached to a code element. It either declares a
// definition (Ref is empty) or uses one (Ref names the declared definition).
//
// Declarations are values. The registry hands out copies, and nothing in
// oasgen mutates a Declaration after discovery.
type Declaration struct {
	ID    Identity
	Kind  Kind
	Attrs map[string]any
	// Name overrides the derived component name.
	Name string
	// Ref names the declaration a usage marker points to.
	Ref string
	// Factory builds the body of the definition. Its expected type depends
	// on Kind: SchemaFactory, ResponseFactory, and so on.
	Factory any
	Level   Level
	// Depth is the nesting depth of the group a group-level marker is attached to.
	Depth int
	// Collections lists the collections the declaration belongs to.
	// Empty means the default collection; "*" means every collection.
	Collections []string
}

// IsUsage reports whether d refers to another declaration rather than
// declaring one itself.
func (d Declaration) IsUsage() bool {
	return d.Ref != ""
}

// Clone returns a copy of d that shares no maps or slices with it.
func (d Declaration) Clone() Declaration {
	d.Attrs = maps.Clone(d.Attrs)
	d.Collections = slices.Clone(d.Collections)
	return d
}

// Attr returns the attribute key as a string, or "".
func (d Declaration) Attr(key string) string {
	switch v := d.Attrs[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Has reports whether the attribute key is present.
func (d Declaration) Has(key string) bool {
	_, ok := d.Attrs[key]
	return ok
}

// Flag returns the attribute key as a bool. Strings "true", "yes", and
// "1" are true.
func (d Declaration) Flag(key string) bool {
	switch v := d.Attrs[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}

// List returns the attribute key as a string list. A comma separated
// string is split; a single value becomes a one element list. The second
// result is false when the attribute is absent.
func (d Declaration) List(key string) ([]string, bool) {
	raw, ok := d.Attrs[key]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []string:
		return slices.Clone(v), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, true
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	case nil:
		return []string{}, true
	default:
		return []string{fmt.Sprint(v)}, true
	}
}

// InCollection reports whether d belongs to the named collection.
func (d Declaration) InCollection(name, defaultName string) bool {
	return InCollection(d.Collections, name, defaultName)
}

// InCollection reports whether an item with the given memberships belongs
// to the named collection. No memberships means defaultName only; "*"
// means every collection.
func InCollection(memberships []string, name, defaultName string) bool {
	if len(memberships) == 0 {
		return name == defaultName
	}
	for _, c := range memberships {
		if c == "*" || c == name {
			return true
		}
	}
	return false
}
