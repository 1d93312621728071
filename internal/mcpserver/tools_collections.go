package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/config"
)

type collectionsInput struct {
	Config string `json:"config,omitempty" jsonschema:"Path to the oasgen.yaml of the project (default: OASGEN_MCP_CONFIG or oasgen.yaml)"`
}

type collectionSummary struct {
	Name         string   `json:"name"`
	Default      bool     `json:"default,omitempty"`
	Title        string   `json:"title,omitempty"`
	Version      string   `json:"version,omitempty"`
	IncludePaths []string `json:"include_paths,omitempty"`
	ExcludePaths []string `json:"exclude_paths,omitempty"`
	IncludeTags  []string `json:"include_tags,omitempty"`
}

type collectionsOutput struct {
	Collections []collectionSummary `json:"collections"`
}

func handleCollections(_ context.Context, _ *mcp.CallToolRequest, input collectionsInput) (*mcp.CallToolResult, collectionsOutput, error) {
	_, pc, err := loadProject(input.Config)
	if err != nil {
		return errResult(err), collectionsOutput{}, nil
	}

	names := pc.CollectionNames()
	output := collectionsOutput{Collections: makeSlice[collectionSummary](len(names))}
	for _, name := range names {
		coll, _ := pc.Collection(name)
		summary := collectionSummary{
			Name:         name,
			Default:      name == pc.DefaultCollection,
			IncludePaths: coll.IncludePaths,
			ExcludePaths: coll.ExcludePaths,
			IncludeTags:  coll.IncludeTags,
		}
		if info := config.MergeInfo(pc.Info, coll.Info); info != nil {
			summary.Title = info.Title
			summary.Version = info.Version
		}
		output.Collections = append(output.Collections, summary)
	}
	return nil, output, nil
}
