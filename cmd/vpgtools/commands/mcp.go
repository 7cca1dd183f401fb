package commands

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/erraggy/vpgtools/internal/cliutil"
	"github.com/erraggy/vpgtools/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: vpgtools mcp\n\n")
		cliutil.Writef(fs.Output(), "Run the MCP server over stdio. Exposes the offline tools\n")
		cliutil.Writef(fs.Output(), "(flatten, validate, diff) to MCP clients; no appliance access.\n")
	}
	return fs
}

// HandleMCP executes the mcp command, blocking until the client
// disconnects or the process is signaled.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
