package differ

import (
	"fmt"
	"io"
	"strings"
)

// VpgChanges groups the change set of one VPG, in first-appearance order.
type VpgChanges struct {
	VpgName string
	Changes []RecordChange
}

// GroupByVpg splits the change set per VPG, preserving record order. The
// commit phase walks this grouping: one draft, one update, one commit per
// VPG.
func (r *DiffResult) GroupByVpg() []VpgChanges {
	var groups []VpgChanges
	index := make(map[string]int)
	for _, change := range r.Changes {
		name := change.Identity.VpgName
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, VpgChanges{VpgName: name})
		}
		groups[i].Changes = append(groups[i].Changes, change)
	}
	return groups
}

// WriteReport renders the change set hierarchically (VPG → VM → NIC →
// field) for human review. Pure presentation: the writer is an explicit
// collaborator and the change set is not mutated.
func (r *DiffResult) WriteReport(w io.Writer) {
	if !r.HasChanges() {
		fmt.Fprintln(w, "\nNo changes found.")
		return
	}

	fmt.Fprintln(w, "\nThe following changes will be applied:")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	groups := r.GroupByVpg()
	for _, group := range groups {
		fmt.Fprintf(w, "\nVPG: %s\n", group.VpgName)
		fmt.Fprintln(w, strings.Repeat("-", 40))

		lastVM := ""
		for _, change := range group.Changes {
			if change.Identity.VMIdentifier != lastVM {
				lastVM = change.Identity.VMIdentifier
				if change.VMName != "" {
					fmt.Fprintf(w, "  VM name: %s, VM ID: %s\n", change.VMName, change.Identity.VMIdentifier)
				} else {
					fmt.Fprintf(w, "  VM ID: %s\n", change.Identity.VMIdentifier)
				}
			}
			fmt.Fprintf(w, "    NIC: %s\n", change.Identity.NicIdentifier)
			fmt.Fprintln(w, "    Changes:")
			for _, field := range change.Fields {
				fmt.Fprintf(w, "      %s:\n", field.Field)
				fmt.Fprintf(w, "        Current: %s\n", field.Current)
				fmt.Fprintf(w, "        Updated: %s\n", field.Updated)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "\nTotal changes: %d NIC(s) across %d VPG(s)\n", len(r.Changes), len(groups))
}
