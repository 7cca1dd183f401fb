package settings

import (
	"encoding/json"
)

// Custom JSON marshaling flattens each struct's Extra map into the
// top-level object, as Go's encoding/json doesn't support inline maps
// like yaml:",inline". Unmarshaling captures every key the struct does
// not model so a fetched tree re-serializes without data loss.

func captureExtra(data []byte, known ...string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(m, k)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// MarshalJSON implements custom JSON marshaling for ExportedSettings.
func (e *ExportedSettings) MarshalJSON() ([]byte, error) {
	if len(e.Extra) == 0 {
		type Alias ExportedSettings
		return json.Marshal((*Alias)(e))
	}
	m := make(map[string]any, 1+len(e.Extra))
	m["ExportedVpgSettingsApi"] = e.Vpgs
	for k, v := range e.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for ExportedSettings.
func (e *ExportedSettings) UnmarshalJSON(data []byte) error {
	type Alias ExportedSettings
	if err := json.Unmarshal(data, (*Alias)(e)); err != nil {
		return err
	}
	extra, err := captureExtra(data, "ExportedVpgSettingsApi")
	if err != nil {
		return err
	}
	e.Extra = extra
	return nil
}

// MarshalJSON implements custom JSON marshaling for VpgSettings.
func (v *VpgSettings) MarshalJSON() ([]byte, error) {
	if len(v.Extra) == 0 {
		type Alias VpgSettings
		return json.Marshal((*Alias)(v))
	}
	m := make(map[string]any, 2+len(v.Extra))
	m["Basic"] = v.Basic
	m["Vms"] = v.Vms
	for k, val := range v.Extra {
		m[k] = val
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for VpgSettings.
func (v *VpgSettings) UnmarshalJSON(data []byte) error {
	type Alias VpgSettings
	if err := json.Unmarshal(data, (*Alias)(v)); err != nil {
		return err
	}
	extra, err := captureExtra(data, "Basic", "Vms")
	if err != nil {
		return err
	}
	v.Extra = extra
	return nil
}

// MarshalJSON implements custom JSON marshaling for BasicSettings.
func (b *BasicSettings) MarshalJSON() ([]byte, error) {
	if len(b.Extra) == 0 {
		type Alias BasicSettings
		return json.Marshal((*Alias)(b))
	}
	m := make(map[string]any, 1+len(b.Extra))
	m["Name"] = b.Name
	for k, v := range b.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for BasicSettings.
func (b *BasicSettings) UnmarshalJSON(data []byte) error {
	type Alias BasicSettings
	if err := json.Unmarshal(data, (*Alias)(b)); err != nil {
		return err
	}
	extra, err := captureExtra(data, "Name")
	if err != nil {
		return err
	}
	b.Extra = extra
	return nil
}

// MarshalJSON implements custom JSON marshaling for VMSettings.
func (v *VMSettings) MarshalJSON() ([]byte, error) {
	if len(v.Extra) == 0 {
		type Alias VMSettings
		return json.Marshal((*Alias)(v))
	}
	m := make(map[string]any, 2+len(v.Extra))
	m["VmIdentifier"] = v.VmIdentifier
	m["Nics"] = v.Nics
	for k, val := range v.Extra {
		m[k] = val
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for VMSettings.
func (v *VMSettings) UnmarshalJSON(data []byte) error {
	type Alias VMSettings
	if err := json.Unmarshal(data, (*Alias)(v)); err != nil {
		return err
	}
	extra, err := captureExtra(data, "VmIdentifier", "Nics")
	if err != nil {
		return err
	}
	v.Extra = extra
	return nil
}

// MarshalJSON implements custom JSON marshaling for NicSettings.
func (n *NicSettings) MarshalJSON() ([]byte, error) {
	if len(n.Extra) == 0 {
		type Alias NicSettings
		return json.Marshal((*Alias)(n))
	}
	m := make(map[string]any, 3+len(n.Extra))
	m["NicIdentifier"] = n.NicIdentifier
	if n.Failover != nil {
		m["Failover"] = n.Failover
	}
	if n.FailoverTest != nil {
		m["FailoverTest"] = n.FailoverTest
	}
	for k, v := range n.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for NicSettings.
func (n *NicSettings) UnmarshalJSON(data []byte) error {
	type Alias NicSettings
	if err := json.Unmarshal(data, (*Alias)(n)); err != nil {
		return err
	}
	extra, err := captureExtra(data, "NicIdentifier", "Failover", "FailoverTest")
	if err != nil {
		return err
	}
	n.Extra = extra
	return nil
}

// MarshalJSON implements custom JSON marshaling for NicRole.
func (r *NicRole) MarshalJSON() ([]byte, error) {
	if len(r.Extra) == 0 {
		type Alias NicRole
		return json.Marshal((*Alias)(r))
	}
	m := make(map[string]any, 1+len(r.Extra))
	if r.Hypervisor != nil {
		m["Hypervisor"] = r.Hypervisor
	}
	for k, v := range r.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for NicRole.
func (r *NicRole) UnmarshalJSON(data []byte) error {
	type Alias NicRole
	if err := json.Unmarshal(data, (*Alias)(r)); err != nil {
		return err
	}
	extra, err := captureExtra(data, "Hypervisor")
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// MarshalJSON implements custom JSON marshaling for HypervisorNic.
func (h *HypervisorNic) MarshalJSON() ([]byte, error) {
	if len(h.Extra) == 0 {
		type Alias HypervisorNic
		return json.Marshal((*Alias)(h))
	}
	m := make(map[string]any, 3+len(h.Extra))
	m["NetworkIdentifier"] = h.NetworkIdentifier
	m["ShouldReplaceIpConfiguration"] = h.ShouldReplaceIpConfiguration
	if h.IpConfig != nil {
		m["IpConfig"] = h.IpConfig
	}
	for k, v := range h.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for HypervisorNic.
func (h *HypervisorNic) UnmarshalJSON(data []byte) error {
	type Alias HypervisorNic
	if err := json.Unmarshal(data, (*Alias)(h)); err != nil {
		return err
	}
	extra, err := captureExtra(data, "NetworkIdentifier", "ShouldReplaceIpConfiguration", "IpConfig")
	if err != nil {
		return err
	}
	h.Extra = extra
	return nil
}

// MarshalJSON implements custom JSON marshaling for IPConfig.
func (c *IPConfig) MarshalJSON() ([]byte, error) {
	if len(c.Extra) == 0 {
		type Alias IPConfig
		return json.Marshal((*Alias)(c))
	}
	m := make(map[string]any, 6+len(c.Extra))
	m["IsDhcp"] = c.IsDhcp
	m["StaticIp"] = c.StaticIp
	m["SubnetMask"] = c.SubnetMask
	m["Gateway"] = c.Gateway
	m["PrimaryDns"] = c.PrimaryDns
	m["SecondaryDns"] = c.SecondaryDns
	for k, v := range c.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements custom JSON unmarshaling for IPConfig.
func (c *IPConfig) UnmarshalJSON(data []byte) error {
	type Alias IPConfig
	if err := json.Unmarshal(data, (*Alias)(c)); err != nil {
		return err
	}
	extra, err := captureExtra(data,
		"IsDhcp", "StaticIp", "SubnetMask", "Gateway", "PrimaryDns", "SecondaryDns")
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}
