package flatten

import (
	"strconv"

	"github.com/erraggy/vpgtools/settings"
)

// DefaultSubnetMask is written when a subnet field is cleared to empty:
// an address without a subnet is rarely valid, and this matches the
// product CIDR default.
const DefaultSubnetMask = "255.255.255.0"

// FieldSpec describes one editable column: how to read it out of a role's
// backend configuration and how to write an approved change back. The
// same table drives the flattener, the differ, the validator, and the
// patcher, so the column list exists exactly once.
type FieldSpec struct {
	// Name is the column name, e.g. "Failover Test Subnet"
	Name string
	// Role is the interface role the column belongs to
	Role Role
	// Address marks the five static-address columns the validator and the
	// DHCP-clearing rule treat as a unit
	Address bool
	// Get reads the current value from a backend configuration; hv may be
	// nil when the role or its backend variant is absent from the tree
	Get func(hv *settings.HypervisorNic) string
	// Set writes a new value into a backend configuration; the patcher
	// guarantees hv is non-nil before calling
	Set func(hv *settings.HypervisorNic, value string)
}

// fieldTable is built once per role at init. Column order matches the
// original export layout: Failover block first, then Failover Test.
var (
	fieldTable  []FieldSpec
	fieldByName map[string]FieldSpec
)

func init() {
	for _, role := range Roles() {
		fieldTable = append(fieldTable, roleFields(role)...)
	}
	fieldByName = make(map[string]FieldSpec, len(fieldTable))
	for _, f := range fieldTable {
		fieldByName[f.Name] = f
	}
}

// Fields returns the full field table in canonical column order.
func Fields() []FieldSpec {
	return fieldTable
}

// FieldNames returns the canonical column names, identity columns excluded.
func FieldNames() []string {
	names := make([]string, len(fieldTable))
	for i, f := range fieldTable {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field spec for a column name.
func Lookup(name string) (FieldSpec, bool) {
	f, ok := fieldByName[name]
	return f, ok
}

// RoleFields returns the field specs belonging to one role, in column order.
func RoleFields(role Role) []FieldSpec {
	out := make([]FieldSpec, 0, 8)
	for _, f := range fieldTable {
		if f.Role == role {
			out = append(out, f)
		}
	}
	return out
}

func roleFields(role Role) []FieldSpec {
	prefix := string(role) + " "
	return []FieldSpec{
		{
			Name: prefix + "Network",
			Role: role,
			Get: func(hv *settings.HypervisorNic) string {
				if hv == nil {
					return ""
				}
				return hv.NetworkIdentifier
			},
			Set: func(hv *settings.HypervisorNic, value string) {
				hv.NetworkIdentifier = value
			},
		},
		{
			Name: prefix + "ShouldReplaceIpConfiguration",
			Role: role,
			Get: func(hv *settings.HypervisorNic) string {
				if hv == nil {
					return "false"
				}
				return strconv.FormatBool(hv.ShouldReplaceIpConfiguration)
			},
			Set: func(hv *settings.HypervisorNic, value string) {
				// Setting the gate never materializes IpConfig.
				hv.ShouldReplaceIpConfiguration = IsTrue(value)
			},
		},
		{
			Name: prefix + "DHCP",
			Role: role,
			Get: func(hv *settings.HypervisorNic) string {
				if hv == nil || hv.IpConfig == nil {
					return "false"
				}
				return strconv.FormatBool(hv.IpConfig.IsDhcp)
			},
			Set: func(hv *settings.HypervisorNic, value string) {
				cfg := ensureIPConfig(hv)
				cfg.IsDhcp = IsTrue(value)
				if cfg.IsDhcp {
					// DHCP supersedes static: a partial edit must not leave
					// stale address values behind an IsDhcp=true flag.
					cfg.ClearStaticFields()
				}
			},
		},
		addressField(role, prefix+"IP", func(c *settings.IPConfig) **string { return &c.StaticIp }, ""),
		addressField(role, prefix+"Subnet", func(c *settings.IPConfig) **string { return &c.SubnetMask }, DefaultSubnetMask),
		addressField(role, prefix+"Gateway", func(c *settings.IPConfig) **string { return &c.Gateway }, ""),
		addressField(role, prefix+"DNS1", func(c *settings.IPConfig) **string { return &c.PrimaryDns }, ""),
		addressField(role, prefix+"DNS2", func(c *settings.IPConfig) **string { return &c.SecondaryDns }, ""),
	}
}

// addressField builds the spec for one of the five static-address columns.
// emptyDefault is written instead of null when the new value is empty;
// only the subnet column has one.
func addressField(role Role, name string, slot func(*settings.IPConfig) **string, emptyDefault string) FieldSpec {
	return FieldSpec{
		Name:    name,
		Role:    role,
		Address: true,
		Get: func(hv *settings.HypervisorNic) string {
			if hv == nil || hv.IpConfig == nil {
				return ""
			}
			if p := *slot(hv.IpConfig); p != nil {
				return *p
			}
			return ""
		},
		Set: func(hv *settings.HypervisorNic, value string) {
			cfg := ensureIPConfig(hv)
			switch {
			case value != "":
				*slot(cfg) = &value
			case emptyDefault != "":
				def := emptyDefault
				*slot(cfg) = &def
			default:
				*slot(cfg) = nil
			}
		},
	}
}

// ensureIPConfig lazily materializes an IpConfig with IsDhcp=false and
// null address fields.
func ensureIPConfig(hv *settings.HypervisorNic) *settings.IPConfig {
	if hv.IpConfig == nil {
		hv.IpConfig = &settings.IPConfig{}
	}
	return hv.IpConfig
}
