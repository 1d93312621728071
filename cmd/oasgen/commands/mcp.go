package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasgen/internal/cliutil"
	"github.com/erraggy/oasgen/internal/mcpserver"
)

// HandleMCP starts the MCP server on stdio and blocks until the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasgen mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the generate, collections, and components tools over MCP on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  OASGEN_MCP_CONFIG            default configuration file (oasgen.yaml)\n")
		cliutil.Writef(fs.Output(), "  OASGEN_MCP_CACHE_ENABLED     cache generators between calls (true)\n")
		cliutil.Writef(fs.Output(), "  OASGEN_MCP_CACHE_TTL         generator cache lifetime (30s)\n")
		cliutil.Writef(fs.Output(), "  OASGEN_MCP_LIST_LIMIT        default page size of listing tools (100)\n")
		cliutil.Writef(fs.Output(), "  OASGEN_MCP_MAX_LIMIT         largest accepted page size (1000)\n")
		cliutil.Writef(fs.Output(), "  OASGEN_MCP_MAX_INLINE_SIZE   largest document returned inline (10485760)\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
