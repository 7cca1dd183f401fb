// Package csvio reads and writes the tabular form of NIC records: one row
// per (VPG, VM, NIC) with per-role network, consent gate, DHCP, and
// static-address columns.
//
// Headers are matched case-insensitively using Unicode case folding, and
// the column order of an input file is preserved on its records so diff
// output mirrors the operator's sheet. Missing required columns fail fast
// before any diffing.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"

	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/vpgerrors"
)

// fold matches header cells against canonical column names regardless of
// case.
var fold = cases.Fold()

// Columns returns the canonical column order: the three identity columns
// followed by the field table.
func Columns() []string {
	cols := []string{flatten.ColVpgName, flatten.ColVMIdentifier, flatten.ColNicIdentifier}
	return append(cols, flatten.FieldNames()...)
}

// ReadRecords parses NIC records from CSV. Every canonical column must be
// present (matched case-insensitively); unknown columns are ignored. Field
// iteration order on the returned records follows the file's column order.
func ReadRecords(r io.Reader) ([]*flatten.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &vpgerrors.InputError{Source: "csv", Message: "cannot read header row", Cause: err}
	}

	canonical := make(map[string]string, len(Columns()))
	for _, name := range Columns() {
		canonical[fold.String(name)] = name
	}

	// Map each file column to its canonical name, in file order.
	colNames := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, cell := range header {
		name, ok := canonical[fold.String(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		colNames[i] = name
		seen[name] = true
	}

	var missing []string
	for _, name := range Columns() {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &vpgerrors.InputError{Source: "csv", Missing: missing, Message: "required columns not present"}
	}

	idCol := func(row []string, want string) string {
		for i, name := range colNames {
			if name == want {
				return row[i]
			}
		}
		return ""
	}

	var records []*flatten.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &vpgerrors.InputError{Source: "csv", Message: fmt.Sprintf("row %d", line), Cause: err}
		}

		id := flatten.Identity{
			VpgName:       idCol(row, flatten.ColVpgName),
			VMIdentifier:  idCol(row, flatten.ColVMIdentifier),
			NicIdentifier: idCol(row, flatten.ColNicIdentifier),
		}
		if id.VpgName == "" || id.VMIdentifier == "" || id.NicIdentifier == "" {
			return nil, &vpgerrors.InputError{
				Source:  "csv",
				Message: fmt.Sprintf("row %d has an empty identity column", line),
			}
		}

		rec := flatten.NewRecord(id)
		for i, name := range colNames {
			if name == "" || isIdentity(name) {
				continue
			}
			rec.Set(name, row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes NIC records as CSV in canonical column order.
func WriteRecords(w io.Writer, records []*flatten.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, rec := range records {
		row := make([]string, 0, len(Columns()))
		row = append(row, rec.Identity.VpgName, rec.Identity.VMIdentifier, rec.Identity.NicIdentifier)
		for _, name := range flatten.FieldNames() {
			row = append(row, rec.Get(name))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", rec.Identity, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFile reads NIC records from a CSV file.
func ReadFile(path string) ([]*flatten.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &vpgerrors.InputError{Source: path, Message: "cannot open csv file", Cause: err}
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		var ie *vpgerrors.InputError
		if errors.As(err, &ie) && ie.Source == "csv" {
			ie.Source = path
		}
		return nil, err
	}
	return records, nil
}

// WriteFile writes NIC records to a CSV file.
func WriteFile(path string, records []*flatten.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	if err := WriteRecords(f, records); err != nil {
		return err
	}
	return f.Close()
}

func isIdentity(name string) bool {
	switch name {
	case flatten.ColVpgName, flatten.ColVMIdentifier, flatten.ColNicIdentifier:
		return true
	}
	return false
}
