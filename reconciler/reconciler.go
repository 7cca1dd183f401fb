// Package reconciler drives the full settings reconciliation pass: read
// the desired state from CSV, export the current state from the appliance,
// diff, report, confirm, and commit the approved changes one VPG at a
// time through the draft lifecycle.
//
// The pass is sequential by design. Commits mutate production replication
// settings, and a linear VPG-at-a-time walk keeps the blast radius of a
// mid-run failure to a single draft, which is deleted before the error
// surfaces.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/erraggy/vpgtools/csvio"
	"github.com/erraggy/vpgtools/differ"
	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/patcher"
	"github.com/erraggy/vpgtools/validator"
	"github.com/erraggy/vpgtools/vpgerrors"
	"github.com/erraggy/vpgtools/zvm"
)

// Reconciler wires the collaborators of a reconciliation pass. Reporting
// and confirmation are explicit: nothing here writes to package-level
// state.
type Reconciler struct {
	// Client talks to the appliance
	Client *zvm.Client
	// Logger receives progress and skip lines; zero value logs nothing
	Logger zerolog.Logger
	// Out receives the human-readable change report; defaults to stdout
	Out io.Writer
	// Confirm is asked once before any draft is created. Nil means
	// proceed without asking (non-interactive use).
	Confirm func(prompt string) bool
}

// Options selects the inputs of one pass.
type Options struct {
	// CSVPath is the desired-state file for Run
	CSVPath string
	// OutPath is the CSV destination for Export; empty writes to Out
	OutPath string
	// VpgNames restricts the pass to the named VPGs; empty means every
	// VPG named in the CSV (Run) or every VPG on the appliance (Export)
	VpgNames []string
	// Sync makes each commit wait for its task to complete
	Sync bool
}

// Summary is the outcome of a Run.
type Summary struct {
	// VpgsUpdated counts the VPGs whose drafts were committed
	VpgsUpdated int
	// NicsChanged counts the NIC change sets applied
	NicsChanged int
	// NicsSkipped counts the NIC change sets dropped on commit-time
	// lookup misses
	NicsSkipped int
	// Aborted is set when the operator declined the confirmation prompt
	Aborted bool
}

// Run executes a full reconciliation pass. Validation failure aborts
// before any draft exists; transport failures abort and surface as-is;
// identities missing from a live draft are logged, skipped, and counted.
func (r *Reconciler) Run(ctx context.Context, opts Options) (*Summary, error) {
	desired, err := csvio.ReadFile(opts.CSVPath)
	if err != nil {
		return nil, err
	}
	if len(desired) == 0 {
		return nil, &vpgerrors.InputError{Source: opts.CSVPath, Message: "no rows to reconcile"}
	}

	names := opts.VpgNames
	if len(names) == 0 {
		names = vpgNamesOf(desired)
	}
	r.Logger.Info().Strs("vpgs", names).Int("rows", len(desired)).Msg("starting reconciliation")

	current, err := r.fetchCurrent(ctx, names)
	if err != nil {
		return nil, err
	}

	vmNames := r.lookupVMNames(ctx, desired)

	if err := validator.Validate(desired, validator.WithVMNames(vmNames)); err != nil {
		return nil, err
	}

	result := differ.Diff(current, desired, differ.WithVMNames(vmNames))
	result.WriteReport(r.out())
	if !result.HasChanges() {
		return &Summary{}, nil
	}

	if r.Confirm != nil && !r.Confirm("Do you want to apply these changes?") {
		r.Logger.Info().Msg("operator declined, nothing committed")
		return &Summary{Aborted: true}, nil
	}

	summary := &Summary{}
	for _, group := range result.GroupByVpg() {
		applied, skipped, err := r.commitVpg(ctx, group, opts.Sync)
		summary.NicsChanged += applied
		summary.NicsSkipped += skipped
		if err != nil {
			return summary, err
		}
		if applied > 0 {
			summary.VpgsUpdated++
		}
	}

	r.Logger.Info().
		Int("vpgs_updated", summary.VpgsUpdated).
		Int("nics_changed", summary.NicsChanged).
		Int("nics_skipped", summary.NicsSkipped).
		Msg("reconciliation complete")
	return summary, nil
}

// Export writes the current NIC settings of the selected VPGs as CSV: the
// read half of the edit round trip. Returns the number of rows written.
func (r *Reconciler) Export(ctx context.Context, opts Options) (int, error) {
	records, err := r.fetchCurrent(ctx, opts.VpgNames)
	if err != nil {
		return 0, err
	}

	if opts.OutPath == "" {
		if err := csvio.WriteRecords(r.out(), records); err != nil {
			return 0, err
		}
	} else if err := csvio.WriteFile(opts.OutPath, records); err != nil {
		return 0, err
	}

	r.Logger.Info().Int("rows", len(records)).Str("path", opts.OutPath).Msg("exported settings")
	return len(records), nil
}

// fetchCurrent snapshots the selected VPGs on the appliance and flattens
// the result.
func (r *Reconciler) fetchCurrent(ctx context.Context, vpgNames []string) ([]*flatten.Record, error) {
	token, err := r.Client.ExportVpgSettings(ctx, vpgNames)
	if err != nil {
		return nil, err
	}
	doc, err := r.Client.ReadExportedVpgSettings(ctx, token, vpgNames)
	if err != nil {
		return nil, err
	}
	return flatten.Flatten(doc), nil
}

// commitVpg runs the draft lifecycle for one VPG's change set. Any failure
// after the draft opens deletes the draft before returning.
func (r *Reconciler) commitVpg(ctx context.Context, group differ.VpgChanges, sync bool) (applied, skipped int, err error) {
	info, err := r.Client.GetVpg(ctx, group.VpgName)
	if err != nil {
		if errors.Is(err, vpgerrors.ErrLookup) {
			r.Logger.Error().Str("vpg", group.VpgName).Msg("VPG no longer exists, skipping its changes")
			return 0, len(group.Changes), nil
		}
		return 0, 0, err
	}

	draftID, err := r.Client.CreateVpgSettings(ctx, info.VpgIdentifier)
	if err != nil {
		return 0, 0, err
	}
	discard := func() {
		if derr := r.Client.DeleteVpgSettings(ctx, draftID); derr != nil {
			r.Logger.Error().Err(derr).Str("vpg", group.VpgName).Msg("failed to delete settings draft")
		}
	}

	draft, err := r.Client.GetVpgSettings(ctx, draftID)
	if err != nil {
		discard()
		return 0, 0, err
	}

	res, err := patcher.Apply(draft, group.Changes, patcher.WithLenientLookup(), patcher.WithLogger(r.Logger))
	if err != nil {
		discard()
		return 0, 0, err
	}
	if len(res.Applied) == 0 {
		r.Logger.Warn().Str("vpg", group.VpgName).Msg("no changes applicable to the live draft")
		discard()
		return 0, len(res.Skipped), nil
	}

	if err := r.Client.UpdateVpgSettings(ctx, draftID, draft); err != nil {
		discard()
		return 0, 0, err
	}
	if err := r.Client.CommitVpg(ctx, draftID, group.VpgName, sync); err != nil {
		discard()
		return 0, 0, fmt.Errorf("committing VPG %q: %w", group.VpgName, err)
	}

	r.Logger.Info().Str("vpg", group.VpgName).Int("nics", len(res.Applied)).Msg("committed settings")
	return len(res.Applied), len(res.Skipped), nil
}

// lookupVMNames resolves display names for the VMs in the desired set.
// Lookup failures degrade to an empty name: the name is display-only.
func (r *Reconciler) lookupVMNames(ctx context.Context, records []*flatten.Record) map[string]string {
	names := make(map[string]string)
	for _, rec := range records {
		id := rec.Identity.VMIdentifier
		if _, done := names[id]; done {
			continue
		}
		name, err := r.Client.ListVMName(ctx, id)
		if err != nil {
			r.Logger.Warn().Err(err).Str("vm", id).Msg("cannot resolve VM name")
			name = ""
		}
		names[id] = name
	}
	return names
}

func (r *Reconciler) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

// vpgNamesOf lists the distinct VPG names in record order.
func vpgNamesOf(records []*flatten.Record) []string {
	var names []string
	seen := make(map[string]bool)
	for _, rec := range records {
		if !seen[rec.Identity.VpgName] {
			seen[rec.Identity.VpgName] = true
			names = append(names, rec.Identity.VpgName)
		}
	}
	return names
}
