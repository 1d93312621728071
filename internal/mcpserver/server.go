// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasgen document generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen"
)

const serverInstructions = `oasgen MCP server: generates OpenAPI 3 documents from the markers and routes of a project and inspects the result.

Every tool takes an optional config (path to the project's oasgen.yaml) and most take a collection. Use collections first to learn which documents a project produces, components to see what a collection defines, and generate to produce the document.

Configuration: defaults are configurable via OASGEN_MCP_* environment variables set in your MCP client config.
- OASGEN_MCP_CONFIG (default: oasgen.yaml) is the project config used when a call names none
- OASGEN_MCP_CACHE_ENABLED (default: true) caches loaded projects per session
- OASGEN_MCP_CACHE_TTL (default: 30s) bounds how long discovered marker files are reused
- OASGEN_MCP_LIST_LIMIT (default: 100) is the default result limit for list tools
- OASGEN_MCP_MAX_INLINE_SIZE (default: 10MiB) caps documents returned inline; larger documents need output`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgen", Version: oasgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate the OpenAPI document of one collection of a project. Returns operation and component counts, and the document inline (format json or yaml) unless output names a file to write it to. Use dedupe to fold structurally identical schemas.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "collections",
		Description: "List the collections of a project with their document titles and path/tag selection rules. Every project has the default collection.",
	}, handleCollections)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "components",
		Description: "List the components a collection's document defines (schemas, responses, requestBodies, callbacks, securitySchemes). Filter by section or by a name glob. Use group_by=section for counts per section. Use offset/limit to paginate.",
	}, handleComponents)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchName reports whether name matches pattern; an empty pattern
// matches everything and a pattern without wildcards matches exactly.
func matchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == name
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
