package differ

import (
	"github.com/erraggy/vpgtools/flatten"
)

// FieldChange is a single field modification: the raw current and updated
// values, never normalized.
type FieldChange struct {
	// Field is the column name, e.g. "Failover IP"
	Field string
	// Current is the raw value in the current record ("" for new identities)
	Current string
	// Updated is the raw value in the desired record
	Updated string
}

// RecordChange is the change set of one NIC: the identity triple, the VM
// display name when known, and the changed fields in desired-record order.
type RecordChange struct {
	Identity flatten.Identity
	// VMName is the display name of the VM, if supplied via WithVMNames
	VMName string
	Fields  []FieldChange
}

// Field returns the change for a column name, or nil when the column is
// unchanged.
func (rc *RecordChange) Field(name string) *FieldChange {
	for i := range rc.Fields {
		if rc.Fields[i].Field == name {
			return &rc.Fields[i]
		}
	}
	return nil
}

// DiffResult is the outcome of one diff pass. Record order mirrors the
// desired record order.
type DiffResult struct {
	// Changes holds one entry per NIC with at least one changed field
	Changes []RecordChange
	// FieldCount is the total number of changed fields across all records
	FieldCount int
}

// HasChanges reports whether any field changed.
func (r *DiffResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// Option configures a diff pass.
type Option func(*config)

type config struct {
	vmNames map[string]string
}

// WithVMNames supplies a VM identifier → display name mapping for review
// output.
func WithVMNames(names map[string]string) Option {
	return func(c *config) {
		c.vmNames = names
	}
}

// Diff compares current records against desired records keyed by identity
// triple. For identities present in both, each field whose normalized
// current value differs from the normalized desired value is reported with
// raw values. For identities only in the desired set, the entire desired
// row is reported as new-valued changes with empty current values.
// Identity-key fields are never diffed.
func Diff(current, desired []*flatten.Record, opts ...Option) *DiffResult {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	currentIdx := flatten.Index(current)
	result := &DiffResult{}

	for _, want := range desired {
		cur, exists := currentIdx[want.Identity]

		var fields []FieldChange
		for _, name := range want.Fields() {
			if isIdentityField(name) {
				continue
			}
			updated := want.Get(name)
			if !exists {
				fields = append(fields, FieldChange{Field: name, Current: "", Updated: updated})
				continue
			}
			if !flatten.EqualValues(cur.Get(name), updated) {
				fields = append(fields, FieldChange{Field: name, Current: cur.Get(name), Updated: updated})
			}
		}

		if len(fields) == 0 {
			continue
		}
		result.Changes = append(result.Changes, RecordChange{
			Identity: want.Identity,
			VMName:   cfg.vmNames[want.Identity.VMIdentifier],
			Fields:   fields,
		})
		result.FieldCount += len(fields)
	}

	return result
}

func isIdentityField(name string) bool {
	switch name {
	case flatten.ColVpgName, flatten.ColVMIdentifier, flatten.ColNicIdentifier:
		return true
	}
	return false
}
