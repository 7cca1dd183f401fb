// Package vpgtools provides tools for bulk-editing network and IP
// configuration of Zerto Virtual Protection Groups (VPGs).
//
// vpgtools exports nested VPG NIC settings to a flat CSV for offline
// editing, then re-applies only the changed fields back through the ZVM
// management API. The heavy lifting lives in the reconciliation packages:
//
//   - settings: the nested VPG settings tree model and its JSON/YAML codec
//   - flatten: flattens a settings tree into one record per NIC and
//     normalizes values for comparison
//   - differ: computes the per-field change set between a current and a
//     desired record set and renders it for human review
//   - validator: enforces DHCP/static exclusivity and the
//     ShouldReplaceIpConfiguration consent gate before any mutation
//   - patcher: applies an approved change set back into the settings tree
//   - reconciler: runs the whole pass (export, flatten, validate, diff,
//     confirm, patch, commit) against a live ZVM
//
// Supporting packages: csvio reads and writes the tabular form, zvm is the
// management API client, and vpgerrors provides the structured error types
// shared by all of them.
//
// # Quick Start
//
// Diff an edited CSV against a settings export without touching the API:
//
//	import (
//	    "github.com/erraggy/vpgtools/csvio"
//	    "github.com/erraggy/vpgtools/differ"
//	    "github.com/erraggy/vpgtools/flatten"
//	    "github.com/erraggy/vpgtools/settings"
//	    "github.com/erraggy/vpgtools/validator"
//	)
//
//	exported, err := settings.DecodeFile("export.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	desired, err := csvio.ReadFile("edited.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := validator.Validate(desired); err != nil {
//	    log.Fatal(err)
//	}
//	result := differ.Diff(flatten.Flatten(exported), desired)
//	result.WriteReport(os.Stdout)
//
// The vpgtools CLI wraps the same pipeline; see cmd/vpgtools.
package vpgtools
