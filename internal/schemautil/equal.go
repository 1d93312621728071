package schemautil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/erraggy/oasgen/oas"
)

// metadataFields do not change what a schema accepts.
var metadataFields = []string{
	"Title", "Description", "Default", "Examples", "Example",
	"Deprecated", "ExternalDocs", "Extra",
}

var structuralOptions = cmp.Options{
	cmpopts.IgnoreFields(oas.Schema{}, metadataFields...),
	cmpopts.EquateEmpty(),
	// Required is the only []string field and is order independent.
	cmpopts.SortSlices(func(a, b string) bool { return a < b }),
}

// Equal reports whether two schemas accept the same instances, ignoring
// metadata such as titles, descriptions and examples.
func Equal(a, b *oas.Schema) bool {
	return cmp.Equal(a, b, structuralOptions)
}
