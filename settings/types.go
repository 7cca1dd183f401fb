package settings

// ExportedSettings is the document returned by the ZVM exported-settings
// endpoint: one VpgSettings tree per exported VPG.
type ExportedSettings struct {
	Vpgs []*VpgSettings `yaml:"ExportedVpgSettingsApi" json:"ExportedVpgSettingsApi"`
	// Extra captures fields not explicitly modeled
	Extra map[string]any `yaml:",inline" json:"-"`
}

// VpgSettings is the settings tree for a single VPG.
type VpgSettings struct {
	Basic *BasicSettings `yaml:"Basic" json:"Basic"`
	Vms   []*VMSettings  `yaml:"Vms" json:"Vms"`
	// Extra captures fields not explicitly modeled (journal, networks,
	// recovery, scripting, ...)
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Name returns the VPG name, or "" when Basic is absent.
func (v *VpgSettings) Name() string {
	if v == nil || v.Basic == nil {
		return ""
	}
	return v.Basic.Name
}

// BasicSettings holds the VPG-level basic settings. Only the name is
// modeled; priority, RPO and the rest ride in Extra.
type BasicSettings struct {
	Name string `yaml:"Name" json:"Name"`
	// Extra captures fields not explicitly modeled
	Extra map[string]any `yaml:",inline" json:"-"`
}

// VMSettings is the settings subtree for one protected VM.
type VMSettings struct {
	VmIdentifier string         `yaml:"VmIdentifier" json:"VmIdentifier"`
	Nics         []*NicSettings `yaml:"Nics" json:"Nics"`
	// Extra captures fields not explicitly modeled
	Extra map[string]any `yaml:",inline" json:"-"`
}

// NicSettings is the settings subtree for one NIC of a VM. Failover holds
// the live-failover role configuration, FailoverTest the non-disruptive
// test-failover role configuration; either may be absent.
type NicSettings struct {
	NicIdentifier string   `yaml:"NicIdentifier" json:"NicIdentifier"`
	Failover      *NicRole `yaml:"Failover,omitempty" json:"Failover,omitempty"`
	FailoverTest  *NicRole `yaml:"FailoverTest,omitempty" json:"FailoverTest,omitempty"`
	// Extra captures fields not explicitly modeled
	Extra map[string]any `yaml:",inline" json:"-"`
}

// NicRole is the tagged backend variant for one interface role. The ZVM
// API keys the role object by backend kind; Hypervisor is the only backend
// this tool knows how to edit. Other backend kinds round-trip via Extra.
type NicRole struct {
	Hypervisor *HypervisorNic `yaml:"Hypervisor,omitempty" json:"Hypervisor,omitempty"`
	// Extra captures other backend kinds and unmodeled siblings
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Backend returns the active backend configuration, or nil when the
// Hypervisor variant is absent.
func (r *NicRole) Backend() *HypervisorNic {
	if r == nil {
		return nil
	}
	return r.Hypervisor
}

// HypervisorNic is the hypervisor backend configuration for one role:
// target network, the explicit replace consent gate, and the optional IP
// configuration.
type HypervisorNic struct {
	NetworkIdentifier            string    `yaml:"NetworkIdentifier" json:"NetworkIdentifier"`
	ShouldReplaceIpConfiguration bool      `yaml:"ShouldReplaceIpConfiguration" json:"ShouldReplaceIpConfiguration"`
	IpConfig                     *IPConfig `yaml:"IpConfig,omitempty" json:"IpConfig,omitempty"`
	// Extra captures fields not explicitly modeled (DnsSuffix,
	// ShouldReplaceMacAddress, ...)
	Extra map[string]any `yaml:",inline" json:"-"`
}

// IPConfig is the IP configuration for one role. It is either entirely
// absent from the tree or fully present with IsDhcp always set. The five
// address fields are pointers because the wire format distinguishes null
// from empty: writers clear a field by setting it to null, and DHCP mode
// requires all five to be null.
type IPConfig struct {
	IsDhcp       bool    `yaml:"IsDhcp" json:"IsDhcp"`
	StaticIp     *string `yaml:"StaticIp" json:"StaticIp"`
	SubnetMask   *string `yaml:"SubnetMask" json:"SubnetMask"`
	Gateway      *string `yaml:"Gateway" json:"Gateway"`
	PrimaryDns   *string `yaml:"PrimaryDns" json:"PrimaryDns"`
	SecondaryDns *string `yaml:"SecondaryDns" json:"SecondaryDns"`
	// Extra captures fields not explicitly modeled
	Extra map[string]any `yaml:",inline" json:"-"`
}

// ClearStaticFields sets all five address fields to null. Called when a
// writer enables DHCP, which supersedes any static configuration.
func (c *IPConfig) ClearStaticFields() {
	c.StaticIp = nil
	c.SubnetMask = nil
	c.Gateway = nil
	c.PrimaryDns = nil
	c.SecondaryDns = nil
}
