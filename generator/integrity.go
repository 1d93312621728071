package generator

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/walker"
)

// CheckReferences verifies that every local $ref in doc points at an
// existing component and that every security requirement names a
// declared security scheme. It returns the first failure as an
// UnresolvedReferenceError located by JSON path. References outside the
// document are not checked.
func CheckReferences(ctx context.Context, doc *oas.Document) error {
	var unresolved error
	err := walker.Walk(doc,
		walker.WithUserContext(ctx),
		walker.WithRefHandler(func(_ *walker.WalkContext, ref *walker.RefInfo) walker.Action {
			if !strings.HasPrefix(ref.Ref, "#") {
				return walker.Continue
			}
			section, name, ok := oas.ParseComponentRef(ref.Ref)
			if ok && hasComponent(doc.Components, section, name) {
				return walker.Continue
			}
			unresolved = &oaserrors.UnresolvedReferenceError{
				Ref:      ref.Ref,
				Kind:     section,
				Name:     name,
				Location: ref.SourcePath,
				Field:    string(ref.NodeType),
			}
			return walker.Stop
		}),
		walker.WithSecurityHandler(func(wc *walker.WalkContext, req oas.SecurityRequirement) walker.Action {
			for _, name := range slices.Sorted(maps.Keys(req)) {
				if hasComponent(doc.Components, oas.SectionSecuritySchemes, name) {
					continue
				}
				unresolved = &oaserrors.UnresolvedReferenceError{
					Kind:     oas.SectionSecuritySchemes,
					Name:     name,
					Location: wc.JSONPath,
					Field:    "security",
				}
				return walker.Stop
			}
			return walker.Continue
		}),
	)
	if err != nil {
		return err
	}
	return unresolved
}

func hasComponent(c *oas.Components, section, name string) bool {
	if c == nil {
		return false
	}
	switch section {
	case oas.SectionSchemas:
		_, ok := c.Schemas[name]
		return ok
	case oas.SectionResponses:
		_, ok := c.Responses[name]
		return ok
	case oas.SectionRequestBodies:
		_, ok := c.RequestBodies[name]
		return ok
	case oas.SectionCallbacks:
		_, ok := c.Callbacks[name]
		return ok
	case oas.SectionSecuritySchemes:
		_, ok := c.SecuritySchemes[name]
		return ok
	}
	return false
}
