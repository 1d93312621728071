package mcpserver

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/oas"
)

type componentsInput struct {
	Config     string `json:"config,omitempty"     jsonschema:"Path to the oasgen.yaml of the project (default: OASGEN_MCP_CONFIG or oasgen.yaml)"`
	Collection string `json:"collection,omitempty" jsonschema:"Collection to inspect (default: the default collection)"`
	Section    string `json:"section,omitempty"    jsonschema:"Filter by components section: schemas, responses, requestBodies, callbacks, securitySchemes"`
	Name       string `json:"name,omitempty"       jsonschema:"Filter by component name (exact, or glob with * and ?)"`
	GroupBy    string `json:"group_by,omitempty"   jsonschema:"Group results and return counts instead of items: section"`
	Offset     int    `json:"offset,omitempty"     jsonschema:"Skip the first N results (for pagination)"`
	Limit      int    `json:"limit,omitempty"      jsonschema:"Maximum number of results to return (default 100)"`
}

type componentSummary struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Ref     string `json:"ref"`
}

type componentsOutput struct {
	Collection string             `json:"collection"`
	Total      int                `json:"total"`
	Returned   int                `json:"returned"`
	Components []componentSummary `json:"components,omitempty"`
	Groups     []groupCount       `json:"groups,omitempty"`
}

var componentSections = []string{
	oas.SectionSchemas,
	oas.SectionResponses,
	oas.SectionRequestBodies,
	oas.SectionCallbacks,
	oas.SectionSecuritySchemes,
}

func handleComponents(ctx context.Context, _ *mcp.CallToolRequest, input componentsInput) (*mcp.CallToolResult, componentsOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"section"}); err != nil {
		return errResult(err), componentsOutput{}, nil
	}
	if err := validateGlobPattern(input.Name); err != nil {
		return errResult(err), componentsOutput{}, nil
	}
	if input.Section != "" && !slices.Contains(componentSections, input.Section) {
		return errResult(fmt.Errorf("invalid section %q; valid values: %v", input.Section, componentSections)), componentsOutput{}, nil
	}

	gen, _, err := loadProject(input.Config)
	if err != nil {
		return errResult(err), componentsOutput{}, nil
	}
	result, err := gen.GenerateResult(ctx, input.Collection)
	if err != nil {
		return errResult(err), componentsOutput{}, nil
	}

	var all []componentSummary
	for _, section := range componentSections {
		if input.Section != "" && section != input.Section {
			continue
		}
		for _, name := range sectionNames(result.Document.Components, section) {
			if matchName(input.Name, name) {
				all = append(all, componentSummary{Section: section, Name: name, Ref: "#/components/" + section + "/" + name})
			}
		}
	}

	output := componentsOutput{Collection: result.Collection, Total: len(all)}
	if input.GroupBy != "" {
		output.Groups = groupAndSort(all, func(c componentSummary) string { return c.Section })
		output.Returned = len(output.Groups)
		return nil, output, nil
	}
	output.Components = paginate(all, input.Offset, input.Limit)
	output.Returned = len(output.Components)
	return nil, output, nil
}

func sectionNames(c *oas.Components, section string) []string {
	if c == nil {
		return nil
	}
	switch section {
	case oas.SectionSchemas:
		return slices.Sorted(maps.Keys(c.Schemas))
	case oas.SectionResponses:
		return slices.Sorted(maps.Keys(c.Responses))
	case oas.SectionRequestBodies:
		return slices.Sorted(maps.Keys(c.RequestBodies))
	case oas.SectionCallbacks:
		return slices.Sorted(maps.Keys(c.Callbacks))
	case oas.SectionSecuritySchemes:
		return slices.Sorted(maps.Keys(c.SecuritySchemes))
	}
	return nil
}
