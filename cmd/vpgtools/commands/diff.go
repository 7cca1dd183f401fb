package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/vpgtools/csvio"
	"github.com/erraggy/vpgtools/differ"
	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/internal/cliutil"
	"github.com/erraggy/vpgtools/settings"
	"github.com/erraggy/vpgtools/validator"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Format     string
	SkipChecks bool
}

// SetupDiffFlags creates and configures a FlagSet for the diff command.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")
	fs.BoolVar(&flags.SkipChecks, "skip-checks", false, "diff without validating the CSV first")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: vpgtools diff [flags] <csv-file> <settings-file>\n\n")
		cliutil.Writef(fs.Output(), "Preview the changes a desired-state CSV would apply against an\n")
		cliutil.Writef(fs.Output(), "exported settings file (JSON or YAML). Entirely offline: no\n")
		cliutil.Writef(fs.Output(), "appliance connection and nothing is modified.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  vpgtools diff nics.csv exported-settings.json\n")
		cliutil.Writef(fs.Output(), "  vpgtools diff --format json nics.csv exported-settings.json | jq '.nics_changed'\n")
	}

	return fs, flags
}

// HandleDiff executes the diff command
func HandleDiff(args []string) error {
	fs, flags := SetupDiffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires a CSV file and a settings file")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	return runDiff(os.Stdout, fs.Arg(0), fs.Arg(1), flags)
}

// diffReport is the json-format shape of an offline diff.
type diffReport struct {
	NicsChanged   int                   `json:"nics_changed"`
	FieldsChanged int                   `json:"fields_changed"`
	Changes       []differ.RecordChange `json:"changes,omitempty"`
}

func runDiff(w io.Writer, csvPath, settingsPath string, flags *DiffFlags) error {
	desired, err := csvio.ReadFile(csvPath)
	if err != nil {
		return err
	}
	doc, err := settings.DecodeFile(settingsPath)
	if err != nil {
		return err
	}

	if !flags.SkipChecks {
		if err := validator.Validate(desired); err != nil {
			return err
		}
	}

	result := differ.Diff(flatten.Flatten(doc), desired)

	if flags.Format == FormatJSON {
		report := diffReport{
			NicsChanged:   len(result.Changes),
			FieldsChanged: result.FieldCount,
			Changes:       result.Changes,
		}
		bytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling diff report: %w", err)
		}
		cliutil.Writef(w, "%s\n", bytes)
		return nil
	}

	result.WriteReport(w)
	return nil
}
