package main

import (
	"fmt"
	"os"

	vpgtools "github.com/erraggy/vpgtools"
	"github.com/erraggy/vpgtools/cmd/vpgtools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("vpgtools v%s\n", vpgtools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "export":
		run(commands.HandleExport)
	case "import":
		run(commands.HandleImport)
	case "diff":
		run(commands.HandleDiff)
	case "mcp":
		run(commands.HandleMCP)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(handler func(args []string) error) {
	if err := handler(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("vpgtools - bulk VPG NIC settings reconciliation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vpgtools <command> [flags] [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export    Export current VPG NIC settings as CSV")
	fmt.Println("  import    Reconcile settings against an edited CSV")
	fmt.Println("  diff      Preview CSV changes against an exported settings file (offline)")
	fmt.Println("  mcp       Run the MCP server over stdio")
	fmt.Println("  version   Show version information")
	fmt.Println("  help      Show this help message")
	fmt.Println()
	fmt.Println("Run 'vpgtools <command> -h' for command-specific flags.")
}
