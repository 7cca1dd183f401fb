package flatten

import (
	"fmt"

	"github.com/erraggy/vpgtools/settings"
)

// Identity column names, shared with the tabular interface.
const (
	ColVpgName       = "VPG Name"
	ColVMIdentifier  = "VM Identifier"
	ColNicIdentifier = "NIC Identifier"
)

// Role is one of the two interface roles a NIC carries configuration for.
type Role string

const (
	// RoleFailover is the live failover configuration.
	RoleFailover Role = "Failover"
	// RoleFailoverTest is the non-disruptive test failover configuration.
	RoleFailoverTest Role = "Failover Test"
)

// Roles lists both roles in canonical order.
func Roles() []Role {
	return []Role{RoleFailover, RoleFailoverTest}
}

// RoleOf returns the role's subtree on a NIC, or nil when absent.
func (r Role) RoleOf(nic *settings.NicSettings) *settings.NicRole {
	if nic == nil {
		return nil
	}
	switch r {
	case RoleFailoverTest:
		return nic.FailoverTest
	default:
		return nic.Failover
	}
}

// Identity is the unique key of a flat record: (VPG name, VM identifier,
// NIC identifier).
type Identity struct {
	VpgName       string
	VMIdentifier  string
	NicIdentifier string
}

// String returns the identity in a log-friendly form.
func (id Identity) String() string {
	return fmt.Sprintf("VPG %q VM %q NIC %q", id.VpgName, id.VMIdentifier, id.NicIdentifier)
}

// Record is one flat row per NIC: the identity triple plus one string
// value per field-table column. Field iteration order is preserved from
// the source (canonical table order when flattened from a tree, header
// order when read from a CSV) because the diff output mirrors it.
type Record struct {
	Identity Identity

	fields []string
	values map[string]string
}

// NewRecord returns an empty record for the given identity.
func NewRecord(id Identity) *Record {
	return &Record{
		Identity: id,
		values:   make(map[string]string, len(fieldTable)),
	}
}

// Set stores a field value, appending the field to the iteration order on
// first write.
func (r *Record) Set(field, value string) {
	if _, exists := r.values[field]; !exists {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

// Get returns the raw value of a field, or "" when the field is absent.
func (r *Record) Get(field string) string {
	return r.values[field]
}

// Has reports whether the field was present in the source.
func (r *Record) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Fields returns the field names in iteration order.
func (r *Record) Fields() []string {
	return r.fields
}

// Key returns the identity triple, the map key for diffing.
func (r *Record) Key() Identity {
	return r.Identity
}
