package settings

import "reflect"

// Deep equality helpers, used by the round-trip and patch-isolation
// properties: patching a tree with an empty change set must leave it Equal
// to (and in fact byte-identical with) its pre-patch clone.

// Equal reports deep equality of two documents.
func (e *ExportedSettings) Equal(other *ExportedSettings) bool {
	if e == nil || other == nil {
		return e == other
	}
	if len(e.Vpgs) != len(other.Vpgs) {
		return false
	}
	for i := range e.Vpgs {
		if !e.Vpgs[i].Equal(other.Vpgs[i]) {
			return false
		}
	}
	return reflect.DeepEqual(e.Extra, other.Extra)
}

// Equal reports deep equality of two VPG trees.
func (v *VpgSettings) Equal(other *VpgSettings) bool {
	if v == nil || other == nil {
		return v == other
	}
	if !v.Basic.Equal(other.Basic) {
		return false
	}
	if len(v.Vms) != len(other.Vms) {
		return false
	}
	for i := range v.Vms {
		if !v.Vms[i].Equal(other.Vms[i]) {
			return false
		}
	}
	return reflect.DeepEqual(v.Extra, other.Extra)
}

// Equal reports deep equality of two basic settings blocks.
func (b *BasicSettings) Equal(other *BasicSettings) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Name == other.Name && reflect.DeepEqual(b.Extra, other.Extra)
}

// Equal reports deep equality of two VM subtrees.
func (v *VMSettings) Equal(other *VMSettings) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.VmIdentifier != other.VmIdentifier {
		return false
	}
	if len(v.Nics) != len(other.Nics) {
		return false
	}
	for i := range v.Nics {
		if !v.Nics[i].Equal(other.Nics[i]) {
			return false
		}
	}
	return reflect.DeepEqual(v.Extra, other.Extra)
}

// Equal reports deep equality of two NIC subtrees.
func (n *NicSettings) Equal(other *NicSettings) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.NicIdentifier == other.NicIdentifier &&
		n.Failover.Equal(other.Failover) &&
		n.FailoverTest.Equal(other.FailoverTest) &&
		reflect.DeepEqual(n.Extra, other.Extra)
}

// Equal reports deep equality of two role variants.
func (r *NicRole) Equal(other *NicRole) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Hypervisor.Equal(other.Hypervisor) && reflect.DeepEqual(r.Extra, other.Extra)
}

// Equal reports deep equality of two hypervisor backend configurations.
func (h *HypervisorNic) Equal(other *HypervisorNic) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.NetworkIdentifier == other.NetworkIdentifier &&
		h.ShouldReplaceIpConfiguration == other.ShouldReplaceIpConfiguration &&
		h.IpConfig.Equal(other.IpConfig) &&
		reflect.DeepEqual(h.Extra, other.Extra)
}

// Equal reports deep equality of two IP configurations.
func (c *IPConfig) Equal(other *IPConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.IsDhcp == other.IsDhcp &&
		equalStringPtr(c.StaticIp, other.StaticIp) &&
		equalStringPtr(c.SubnetMask, other.SubnetMask) &&
		equalStringPtr(c.Gateway, other.Gateway) &&
		equalStringPtr(c.PrimaryDns, other.PrimaryDns) &&
		equalStringPtr(c.SecondaryDns, other.SecondaryDns) &&
		reflect.DeepEqual(c.Extra, other.Extra)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
