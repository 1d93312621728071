package generator

import (
	"github.com/erraggy/oasgen/internal/schemautil"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/walker"
)

// dedupeSchemas folds structurally identical component schemas into the
// alphabetically first name of each group and rewrites every schema
// reference to an alias. It returns the number of schemas removed.
func dedupeSchemas(doc *oas.Document) (int, error) {
	if doc.Components == nil || len(doc.Components.Schemas) < 2 {
		return 0, nil
	}
	result := schemautil.NewSchemaDeduplicator(nil).Deduplicate(doc.Components.Schemas)
	if result.RemovedCount == 0 {
		return 0, nil
	}
	doc.Components.Schemas = result.CanonicalSchemas

	rewrite := func(ref string) string {
		section, name, ok := oas.ParseComponentRef(ref)
		if !ok || section != oas.SectionSchemas || !result.IsAlias(name) {
			return ref
		}
		return oas.SchemaRef(result.CanonicalName(name))
	}
	err := walker.Walk(doc, walker.WithSchemaHandler(func(_ *walker.WalkContext, s *oas.Schema) walker.Action {
		s.Ref = rewrite(s.Ref)
		if d := s.Discriminator; d != nil {
			for value, ref := range d.Mapping {
				d.Mapping[value] = rewrite(ref)
			}
		}
		return walker.Continue
	}))
	if err != nil {
		return 0, err
	}
	return result.RemovedCount, nil
}
