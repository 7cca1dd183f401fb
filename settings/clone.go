package settings

// Deep-copy helpers. The patcher mutates a tree in place, so callers that
// need the pre-patch state (round-trip tests, draft edits that may be
// cancelled) clone first.

// Clone returns a deep copy of the document.
func (e *ExportedSettings) Clone() *ExportedSettings {
	if e == nil {
		return nil
	}
	out := &ExportedSettings{Extra: cloneAnyMap(e.Extra)}
	if e.Vpgs != nil {
		out.Vpgs = make([]*VpgSettings, len(e.Vpgs))
		for i, vpg := range e.Vpgs {
			out.Vpgs[i] = vpg.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the VPG tree.
func (v *VpgSettings) Clone() *VpgSettings {
	if v == nil {
		return nil
	}
	out := &VpgSettings{Basic: v.Basic.Clone(), Extra: cloneAnyMap(v.Extra)}
	if v.Vms != nil {
		out.Vms = make([]*VMSettings, len(v.Vms))
		for i, vm := range v.Vms {
			out.Vms[i] = vm.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the basic settings.
func (b *BasicSettings) Clone() *BasicSettings {
	if b == nil {
		return nil
	}
	return &BasicSettings{Name: b.Name, Extra: cloneAnyMap(b.Extra)}
}

// Clone returns a deep copy of the VM subtree.
func (v *VMSettings) Clone() *VMSettings {
	if v == nil {
		return nil
	}
	out := &VMSettings{VmIdentifier: v.VmIdentifier, Extra: cloneAnyMap(v.Extra)}
	if v.Nics != nil {
		out.Nics = make([]*NicSettings, len(v.Nics))
		for i, nic := range v.Nics {
			out.Nics[i] = nic.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the NIC subtree.
func (n *NicSettings) Clone() *NicSettings {
	if n == nil {
		return nil
	}
	return &NicSettings{
		NicIdentifier: n.NicIdentifier,
		Failover:      n.Failover.Clone(),
		FailoverTest:  n.FailoverTest.Clone(),
		Extra:         cloneAnyMap(n.Extra),
	}
}

// Clone returns a deep copy of the role variant.
func (r *NicRole) Clone() *NicRole {
	if r == nil {
		return nil
	}
	return &NicRole{Hypervisor: r.Hypervisor.Clone(), Extra: cloneAnyMap(r.Extra)}
}

// Clone returns a deep copy of the hypervisor backend configuration.
func (h *HypervisorNic) Clone() *HypervisorNic {
	if h == nil {
		return nil
	}
	return &HypervisorNic{
		NetworkIdentifier:            h.NetworkIdentifier,
		ShouldReplaceIpConfiguration: h.ShouldReplaceIpConfiguration,
		IpConfig:                     h.IpConfig.Clone(),
		Extra:                        cloneAnyMap(h.Extra),
	}
}

// Clone returns a deep copy of the IP configuration.
func (c *IPConfig) Clone() *IPConfig {
	if c == nil {
		return nil
	}
	return &IPConfig{
		IsDhcp:       c.IsDhcp,
		StaticIp:     cloneStringPtr(c.StaticIp),
		SubnetMask:   cloneStringPtr(c.SubnetMask),
		Gateway:      cloneStringPtr(c.Gateway),
		PrimaryDns:   cloneStringPtr(c.PrimaryDns),
		SecondaryDns: cloneStringPtr(c.SecondaryDns),
		Extra:        cloneAnyMap(c.Extra),
	}
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// cloneAnyMap deep copies a decoded JSON/YAML value tree. Values are
// limited to the shapes the decoders produce: maps, slices, and scalars.
func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneAnyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneAny(item)
		}
		return out
	default:
		return val
	}
}
