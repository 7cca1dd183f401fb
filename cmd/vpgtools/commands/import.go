package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/vpgtools/internal/cliutil"
	"github.com/erraggy/vpgtools/reconciler"
)

// ImportFlags contains flags for the import command
type ImportFlags struct {
	Connection *ConnectionFlags
	VpgNames   string
	Sync       bool
	Yes        bool
}

// SetupImportFlags creates and configures a FlagSet for the import command.
func SetupImportFlags() (*flag.FlagSet, *ImportFlags) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	flags := &ImportFlags{Connection: AddConnectionFlags(fs)}

	fs.StringVar(&flags.VpgNames, "vpg-names", "", "comma-separated VPG names to reconcile (default: VPGs named in the CSV)")
	fs.BoolVar(&flags.Sync, "sync", false, "wait for each commit task to complete")
	fs.BoolVar(&flags.Yes, "yes", false, "apply without asking for confirmation")
	fs.BoolVar(&flags.Yes, "y", false, "apply without asking for confirmation")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: vpgtools import [flags] <csv-file>\n\n")
		cliutil.Writef(fs.Output(), "Reconcile VPG NIC settings against a desired-state CSV.\n")
		cliutil.Writef(fs.Output(), "Shows the full change report and asks for confirmation before\n")
		cliutil.Writef(fs.Output(), "committing anything; changes are committed one VPG at a time.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  vpgtools import --config zvm.yaml nics.csv\n")
		cliutil.Writef(fs.Output(), "  vpgtools import --config zvm.yaml --vpg-names VpgA --sync nics.csv\n")
		cliutil.Writef(fs.Output(), "  vpgtools import --config zvm.yaml --yes nics.csv  # non-interactive\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    Changes applied, nothing to change, or confirmation declined\n")
		cliutil.Writef(fs.Output(), "  1    Validation, transport, or commit failure\n")
	}

	return fs, flags
}

// HandleImport executes the import command
func HandleImport(args []string) error {
	fs, flags := SetupImportFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("import command requires exactly one CSV file path")
	}

	logger := NewLogger(flags.Connection.Verbose)
	client, err := flags.Connection.BuildClient(logger)
	if err != nil {
		return err
	}

	r := &reconciler.Reconciler{
		Client: client,
		Logger: logger,
		Out:    os.Stdout,
	}
	if !flags.Yes {
		r.Confirm = func(prompt string) bool {
			return cliutil.Confirm(os.Stdin, os.Stdout, prompt)
		}
	}

	summary, err := r.Run(context.Background(), reconciler.Options{
		CSVPath:  fs.Arg(0),
		VpgNames: SplitVpgNames(flags.VpgNames),
		Sync:     flags.Sync,
	})
	if err != nil {
		return err
	}

	switch {
	case summary.Aborted:
		cliutil.Writef(os.Stdout, "Aborted, no changes were committed.\n")
	case summary.VpgsUpdated == 0 && summary.NicsSkipped == 0:
		cliutil.Writef(os.Stdout, "Nothing to do.\n")
	default:
		cliutil.Writef(os.Stdout, "Updated %d VPG(s): %d NIC(s) changed, %d skipped.\n",
			summary.VpgsUpdated, summary.NicsChanged, summary.NicsSkipped)
	}
	return nil
}
