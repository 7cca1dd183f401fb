package commands

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/erraggy/vpgtools/internal/cliutil"
	"github.com/erraggy/vpgtools/reconciler"
)

// ExportFlags contains flags for the export command
type ExportFlags struct {
	Connection *ConnectionFlags
	VpgNames   string
	Output     string
}

// SetupExportFlags creates and configures a FlagSet for the export command.
func SetupExportFlags() (*flag.FlagSet, *ExportFlags) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	flags := &ExportFlags{Connection: AddConnectionFlags(fs)}

	fs.StringVar(&flags.VpgNames, "vpg-names", "", "comma-separated VPG names to export (default: all)")
	fs.StringVar(&flags.Output, "output", "", "CSV output path (default: stdout)")
	fs.StringVar(&flags.Output, "o", "", "CSV output path (default: stdout)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: vpgtools export [flags]\n\n")
		cliutil.Writef(fs.Output(), "Export current VPG NIC settings as CSV, one row per NIC.\n")
		cliutil.Writef(fs.Output(), "Edit the CSV and feed it back with 'vpgtools import'.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  vpgtools export --config zvm.yaml -o nics.csv\n")
		cliutil.Writef(fs.Output(), "  vpgtools export --zvm-address zvm.example.com --client-id api --client-secret s3cret --vpg-names VpgA,VpgB\n")
	}

	return fs, flags
}

// HandleExport executes the export command
func HandleExport(args []string) error {
	fs, flags := SetupExportFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	logger := NewLogger(flags.Connection.Verbose)
	client, err := flags.Connection.BuildClient(logger)
	if err != nil {
		return err
	}

	r := &reconciler.Reconciler{Client: client, Logger: logger, Out: os.Stdout}
	rows, err := r.Export(context.Background(), reconciler.Options{
		VpgNames: SplitVpgNames(flags.VpgNames),
		OutPath:  flags.Output,
	})
	if err != nil {
		return err
	}

	if flags.Output != "" {
		cliutil.Writef(os.Stdout, "Exported %d NIC(s) to %s\n", rows, flags.Output)
	}
	return nil
}
