// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the offline reconciliation steps as MCP tools over stdio.
//
// All three tools are file-based: they never talk to an appliance, so an
// MCP client can preview and sanity-check a bulk edit without credentials.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	vpgtools "github.com/erraggy/vpgtools"
)

const serverInstructions = `vpgtools MCP server — previews bulk VPG NIC settings edits offline.

Tools operate on local files only; no appliance connection is made:
- flatten: read an exported VPG settings file (JSON or YAML) and list its NICs as flat rows
- validate: check a desired-state CSV against the IP configuration invariants
- diff: compare a desired-state CSV against an exported settings file and report the field changes a reconciliation run would apply`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "vpgtools", Version: vpgtools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "flatten",
		Description: "Flatten an exported VPG settings file (JSON or YAML) into one row per NIC: identity triple plus per-role network, ShouldReplaceIpConfiguration, DHCP, and static address fields. Use this to see what is currently configured before editing.",
	}, handleFlatten)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a desired-state CSV against the IP configuration invariants: address data requires ShouldReplaceIpConfiguration=True, consent without any address data is rejected, and DHCP excludes static addresses. Reports the first violation found.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare a desired-state CSV against an exported VPG settings file and report every field a reconciliation run would change, grouped per NIC with current and updated values. Rows whose identity is absent from the settings file are reported as entirely new.",
	}, handleDiff)
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
