package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasgen/internal/cliutil"
	"github.com/erraggy/oasgen/internal/mcpserver"
)

// runMCPServer is swapped out in tests.
var runMCPServer = mcpserver.Run

// HandleMCP serves the generator over MCP on stdin/stdout until ctx is done.
func HandleMCP(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasgen mcp\n\n")
		cliutil.Writef(fs.Output(), "Start an MCP server on stdio exposing the generate and inspect tools.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  OASGEN_FLAVORS        default flavors (comma separated)\n")
		cliutil.Writef(fs.Output(), "  OASGEN_STRICT         fail generation on warnings\n")
		cliutil.Writef(fs.Output(), "  OASGEN_INFER_TYPES    declare z.infer types by default\n")
		cliutil.Writef(fs.Output(), "  OASGEN_CACHE_ENABLED  cache parsed documents between calls\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}
	if err := runMCPServer(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
