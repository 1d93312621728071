package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/generator"
	"github.com/erraggy/oasgen/internal/cliutil"
)

type generateInput struct {
	Config     string `json:"config,omitempty"     jsonschema:"Path to the oasgen.yaml of the project (default: OASGEN_MCP_CONFIG or oasgen.yaml)"`
	Collection string `json:"collection,omitempty" jsonschema:"Collection to generate (default: the default collection)"`
	Format     string `json:"format,omitempty"     jsonschema:"Output format: json or yaml (default: json, or inferred from output)"`
	Output     string `json:"output,omitempty"     jsonschema:"File to write the document to instead of returning it inline"`
	Dedupe     bool   `json:"dedupe,omitempty"     jsonschema:"Fold structurally identical schemas into one canonical schema"`
}

type generateOutput struct {
	Collection     string `json:"collection"`
	Title          string `json:"title"`
	Version        string `json:"version"`
	PathCount      int    `json:"path_count"`
	Operations     int    `json:"operations"`
	Components     int    `json:"components"`
	RemovedSchemas int    `json:"removed_schemas,omitempty"`
	Output         string `json:"output,omitempty"`
	Size           int    `json:"size"`
	Document       string `json:"document,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	format := cliutil.FormatJSON
	switch {
	case input.Format != "":
		f, err := cliutil.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), generateOutput{}, nil
		}
		format = f
	case input.Output != "":
		format = cliutil.FormatFromPath(input.Output)
	}

	gen, _, err := loadProject(input.Config)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	if input.Dedupe {
		gen = gen.With(generator.WithSchemaDeduplication(true))
	}
	result, err := gen.GenerateResult(ctx, input.Collection)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	data, err := cliutil.Encode(result.Document, format)
	if err != nil {
		return errResult(fmt.Errorf("failed to encode document: %w", err)), generateOutput{}, nil
	}

	doc := result.Document
	output := generateOutput{
		Collection:     result.Collection,
		Title:          doc.Info.Title,
		Version:        doc.Info.Version,
		PathCount:      len(doc.Paths),
		Operations:     result.Operations,
		Components:     result.Components,
		RemovedSchemas: result.RemovedSchemas,
		Size:           len(data),
	}

	if input.Output != "" {
		if err := os.MkdirAll(filepath.Dir(input.Output), 0o750); err != nil {
			return errResult(fmt.Errorf("failed to create output directory: %w", err)), generateOutput{}, nil
		}
		if err := os.WriteFile(input.Output, data, 0o600); err != nil {
			return errResult(fmt.Errorf("failed to write document: %w", err)), generateOutput{}, nil
		}
		output.Output = input.Output
		return nil, output, nil
	}
	if len(data) > cfg.MaxInlineSize {
		return errResult(fmt.Errorf("document is %d bytes, above the inline limit of %d; set output to write it to a file", len(data), cfg.MaxInlineSize)), generateOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}
