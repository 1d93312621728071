// Command oasgen generates OpenAPI documents from marker declarations and
// routes, scans Go packages for //openapi: directives, and serves the
// generator over MCP.
package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasgen"
	"github.com/erraggy/oasgen/cmd/oasgen/commands"
	"github.com/erraggy/oasgen/internal/cliutil"
)

var commandNames = []string{"collections", "generate", "help", "mcp", "scan", "version"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		if len(args) > 0 && args[0] == "--verbose" {
			fmt.Println(oasgen.BuildInfo())
		} else {
			fmt.Printf("oasgen v%s\n", oasgen.Version())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "generate":
		err = commands.HandleGenerate(args)
	case "scan":
		err = commands.HandleScan(args)
	case "collections":
		err = commands.HandleCollections(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", s)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command name within edit distance 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	cliutil.Writef(os.Stdout, `oasgen - OpenAPI document generator

Usage:
  oasgen <command> [flags]

Commands:
  generate     Generate OpenAPI documents for a project
  scan         Scan Go packages for //openapi: directives and write registration code
  collections  List the document collections of a project
  mcp          Serve oasgen tools over the Model Context Protocol on stdio
  version      Show version information (--verbose for build details)
  help         Show this help message

Run 'oasgen <command> --help' for more information on a command.
`)
}
