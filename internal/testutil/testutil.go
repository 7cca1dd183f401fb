// Package testutil provides shared settings-tree fixtures for tests.
package testutil

import "github.com/erraggy/vpgtools/settings"

// Str returns a pointer to s, for IPConfig address fields.
func Str(s string) *string {
	return &s
}

// StaticIPConfig builds a static IP configuration with the usual /24 shape.
func StaticIPConfig(ip string) *settings.IPConfig {
	return &settings.IPConfig{
		IsDhcp:     false,
		StaticIp:   Str(ip),
		SubnetMask: Str("255.255.255.0"),
		Gateway:    Str("10.0.0.1"),
		PrimaryDns: Str("10.0.0.2"),
	}
}

// DhcpIPConfig builds a DHCP configuration with null address fields.
func DhcpIPConfig() *settings.IPConfig {
	return &settings.IPConfig{IsDhcp: true}
}

// Nic builds a NIC with a fully-populated Failover role and a bare
// FailoverTest role.
func Nic(nicID, network string, ipConfig *settings.IPConfig) *settings.NicSettings {
	return &settings.NicSettings{
		NicIdentifier: nicID,
		Failover: &settings.NicRole{
			Hypervisor: &settings.HypervisorNic{
				NetworkIdentifier:            network,
				ShouldReplaceIpConfiguration: true,
				IpConfig:                     ipConfig,
			},
		},
		FailoverTest: &settings.NicRole{
			Hypervisor: &settings.HypervisorNic{NetworkIdentifier: network + "-test"},
		},
	}
}

// Vpg builds a single-VPG tree: one VM with the given NICs.
func Vpg(name, vmID string, nics ...*settings.NicSettings) *settings.VpgSettings {
	return &settings.VpgSettings{
		Basic: &settings.BasicSettings{Name: name},
		Vms:   []*settings.VMSettings{{VmIdentifier: vmID, Nics: nics}},
	}
}

// Export wraps VPG trees into an exported-settings document.
func Export(vpgs ...*settings.VpgSettings) *settings.ExportedSettings {
	return &settings.ExportedSettings{Vpgs: vpgs}
}
